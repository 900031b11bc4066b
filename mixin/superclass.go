package mixin

import (
	"errors"

	"github.com/CodMac/mixin-lens/model"
)

const javaLangObject = "java.lang.Object"

// SuperClassInspection 校验 Mixin 声明的父类出现在每个目标类的继承链上
type SuperClassInspection struct{}

func (SuperClassInspection) ID() string { return model.InspectionSuperClass }

func (SuperClassInspection) Inspect(table SymbolTable, m *model.MixinDeclaration) []model.Diagnostic {
	if d, ok := CheckSuperclass(table, m); ok {
		return []model.Diagnostic{d}
	}
	return nil
}

// CheckSuperclass 返回第一个失败目标对应的诊断；全部通过时 ok=false
func CheckSuperclass(table SymbolTable, m *model.MixinDeclaration) (model.Diagnostic, bool) {
	if m == nil || m.Class == nil {
		return model.Diagnostic{}, false
	}

	// 1. 未声明父类、声明为 Object、或声明的父类无法解析 -> 通过
	if m.DeclaredSuperclass == "" || m.DeclaredSuperclass == javaLangObject {
		return model.Diagnostic{}, false
	}
	declared, ok := table.ResolveClass(m.DeclaredSuperclass)
	if !ok {
		return model.Diagnostic{}, false
	}

	// 2. 没有可解析的目标 -> 通过
	targets := Targets(table, m)
	if len(targets) == 0 {
		return model.Diagnostic{}, false
	}

	// 3. 按声明顺序检查，第一个失败即返回
	for _, t := range targets {
		if t.QualifiedName == declared.QualifiedName {
			return newSuperclassDiagnostic(m, model.SelfExtension, model.SelfExtensionMessage(), t, declared), true
		}

		chain, err := Ancestors(table, t)
		if containsClass(chain, declared.QualifiedName) {
			continue
		}
		if errors.Is(err, ErrCycleDetected) || errors.Is(err, ErrIncompleteHierarchy) {
			// 继承链不完整，无法证明失败
			continue
		}
		msg := model.NotInHierarchyMessage(declared.QualifiedName, t.QualifiedName)
		return newSuperclassDiagnostic(m, model.NotInHierarchy, msg, t, declared), true
	}
	return model.Diagnostic{}, false
}

func newSuperclassDiagnostic(m *model.MixinDeclaration, kind model.DiagnosticKind, msg string, target, declared *model.ClassSymbol) model.Diagnostic {
	span := m.SuperclassSpan
	if span == nil {
		span = m.Class.Location
	}
	return model.Diagnostic{
		Inspection: model.InspectionSuperClass,
		Kind:       kind,
		Message:    msg,
		Mixin:      m.QualifiedName(),
		Target:     target.QualifiedName,
		Declared:   declared.QualifiedName,
		Span:       span,
	}
}
