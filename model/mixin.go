package model

// TargetReference @Mixin 中的一个目标类引用
type TargetReference struct {
	Raw           string    `json:"Raw"`                     // 源码中的原始文本: "DemonWav" 或 "a.b.C$Inner"
	QualifiedName string    `json:"QualifiedName,omitempty"` // 绑定后的 QN, 为空表示无法解析
	Location      *Location `json:"Location,omitempty"`
}

// Resolved 是否已绑定到 QN
func (t TargetReference) Resolved() bool { return t.QualifiedName != "" }

// AccessorDeclaration Mixin 类中被 @Accessor 修饰的方法
type AccessorDeclaration struct {
	MethodName string    `json:"MethodName"`
	Value      string    `json:"Value,omitempty"` // @Accessor("name") 中显式给出的目标名
	Span       *Location `json:"Span,omitempty"`  // 注解自身的位置
}

// MixinDeclaration 被 @Mixin 修饰的类
type MixinDeclaration struct {
	Class              *ClassSymbol          `json:"Class"`
	Targets            []TargetReference     `json:"Targets"`
	DeclaredSuperclass string                `json:"DeclaredSuperclass,omitempty"` // 绑定后的 QN, 为空表示隐式根
	SuperclassSpan     *Location             `json:"SuperclassSpan,omitempty"`     // extends 之后类型引用的位置
	Accessors          []AccessorDeclaration `json:"Accessors,omitempty"`
	Suppressions       []string              `json:"Suppressions,omitempty"` // @SuppressWarnings 中的检查 ID
}

// QualifiedName Mixin 类自身的 QN
func (m *MixinDeclaration) QualifiedName() string {
	if m.Class == nil {
		return ""
	}
	return m.Class.QualifiedName
}

// IsSuppressed 检查 ID (或 "all") 是否被 @SuppressWarnings 抑制
func (m *MixinDeclaration) IsSuppressed(inspection string) bool {
	for _, s := range m.Suppressions {
		if s == inspection || s == "all" {
			return true
		}
	}
	return false
}
