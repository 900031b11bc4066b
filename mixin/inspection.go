package mixin

import "github.com/CodMac/mixin-lens/model"

// Inspection 针对单个 Mixin 类的检查。实现必须是无状态的，会被多个协程同时调用。
type Inspection interface {
	ID() string
	Inspect(table SymbolTable, m *model.MixinDeclaration) []model.Diagnostic
}

// DefaultInspections 默认启用的检查
func DefaultInspections() []Inspection {
	return []Inspection{SuperClassInspection{}, AccessorTargetInspection{}}
}

// SelectInspections 按 ID 过滤默认检查；ids 为空时返回全部
func SelectInspections(ids []string) []Inspection {
	all := DefaultInspections()
	if len(ids) == 0 {
		return all
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []Inspection
	for _, in := range all {
		if _, ok := want[in.ID()]; ok {
			out = append(out, in)
		}
	}
	return out
}
