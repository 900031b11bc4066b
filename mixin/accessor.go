package mixin

import (
	"strings"
	"unicode"

	"github.com/CodMac/mixin-lens/model"
)

var accessorPrefixes = []string{"get", "is", "set"}

// AccessorTargetInspection 校验 @Accessor 指向的字段存在于目标类中
type AccessorTargetInspection struct{}

func (AccessorTargetInspection) ID() string { return model.InspectionAccessorTarget }

func (AccessorTargetInspection) Inspect(table SymbolTable, m *model.MixinDeclaration) []model.Diagnostic {
	if m == nil || len(m.Accessors) == 0 {
		return nil
	}
	targets := Targets(table, m)
	if len(targets) == 0 {
		return nil
	}
	// 只有源码中的目标才有完整的字段表
	for _, t := range targets {
		if t.Origin != model.OriginSource {
			return nil
		}
	}

	var out []model.Diagnostic
	for _, acc := range m.Accessors {
		name, ok := AccessorTargetName(acc.MethodName, acc.Value)
		if !ok || anyHasField(targets, name) {
			continue
		}
		d := model.Diagnostic{
			Inspection: model.InspectionAccessorTarget,
			Kind:       model.UnresolvedAccessor,
			Message:    model.UnresolvedAccessorMessage(name),
			Mixin:      m.QualifiedName(),
			Target:     targets[0].QualifiedName,
			Declared:   name,
			Span:       acc.Span,
		}
		if acc.Span != nil {
			d.Fix = &model.QuickFix{Description: "Remove @Accessor annotation", Span: acc.Span}
		}
		out = append(out, d)
	}
	return out
}

// AccessorTargetName 显式的注解值优先；否则去掉 get/is/set 前缀，
// 全大写的剩余部分 (常量命名) 保持原样，其余首字母小写
func AccessorTargetName(methodName, value string) (string, bool) {
	if value = strings.TrimSpace(value); value != "" {
		return value, true
	}
	for _, prefix := range accessorPrefixes {
		rest, ok := strings.CutPrefix(methodName, prefix)
		if !ok || rest == "" {
			continue
		}
		first := []rune(rest)[0]
		if !unicode.IsUpper(first) && first != '_' {
			continue
		}
		if strings.ToUpper(rest) == rest {
			return rest, true
		}
		return decapitalize(rest), true
	}
	return "", false
}

func decapitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func anyHasField(targets []*model.ClassSymbol, name string) bool {
	for _, t := range targets {
		if t.HasField(name) {
			return true
		}
	}
	return false
}
