package mixin

import "github.com/CodMac/mixin-lens/model"

// Targets 解析 @Mixin 中的目标类，保持声明顺序，丢弃无法解析与重复的引用
func Targets(table SymbolTable, m *model.MixinDeclaration) []*model.ClassSymbol {
	refs := table.MixinAnnotationTargets(m)
	out := make([]*model.ClassSymbol, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if !ref.Resolved() {
			continue
		}
		sym, ok := table.ResolveClass(ref.QualifiedName)
		if !ok {
			continue
		}
		if _, dup := seen[sym.QualifiedName]; dup {
			continue
		}
		seen[sym.QualifiedName] = struct{}{}
		out = append(out, sym)
	}
	return out
}
