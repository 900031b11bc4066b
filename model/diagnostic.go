package model

import "fmt"

// DiagnosticKind 诊断类型
type DiagnosticKind string

const (
	SelfExtension      DiagnosticKind = "SELF_EXTENSION"      // Mixin 继承了自己的目标类
	NotInHierarchy     DiagnosticKind = "NOT_IN_HIERARCHY"    // 声明的父类不在目标类的继承链中
	UnresolvedAccessor DiagnosticKind = "UNRESOLVED_ACCESSOR" // @Accessor 在目标类中找不到字段
)

// 检查 ID，同时用于 @SuppressWarnings
const (
	InspectionSuperClass     = "MixinSuperClass"
	InspectionAccessorTarget = "AccessorTarget"
)

// QuickFix 可选的修复建议：删除 Span 覆盖的文本
type QuickFix struct {
	Description string    `json:"Description"`
	Span        *Location `json:"Span"`
}

// Diagnostic 一条用户可见的检查结果
type Diagnostic struct {
	Inspection string         `json:"Inspection"`
	Kind       DiagnosticKind `json:"Kind"`
	Message    string         `json:"Message"`
	Mixin      string         `json:"Mixin"`              // Mixin 类 QN
	Target     string         `json:"Target,omitempty"`   // 出问题的目标类 QN
	Declared   string         `json:"Declared,omitempty"` // 声明的父类 QN 或 accessor 名
	Span       *Location      `json:"Span,omitempty"`
	Fix        *QuickFix      `json:"Fix,omitempty"`
}

func SelfExtensionMessage() string {
	return "Cannot extend target class"
}

func NotInHierarchyMessage(declaredQN, targetQN string) string {
	return fmt.Sprintf("Cannot find '%s' in the hierarchy of target class '%s'", ShortName(declaredQN), ShortName(targetQN))
}

func UnresolvedAccessorMessage(name string) string {
	return fmt.Sprintf("Cannot resolve member '%s' in target class", name)
}
