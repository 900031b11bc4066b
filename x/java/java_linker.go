package java

import (
	"sort"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

type Linker struct{}

func NewJavaLinker() *Linker {
	return &Linker{}
}

// LinkHierarchy 负责构建 Mixin 分析用的拓扑图：
// 1. Class -> Superclass (EXTEND，只从源码类型出发，沿途补齐内置/外部父类)
// 2. MixinClass -> Target (MIXIN)
func (l *Linker) LinkHierarchy(gc *core.GlobalContext) []*model.DependencyRelation {
	// 使用 map key 进行全局去重： "type:sourceQN->targetQN"
	relMap := make(map[string]*model.DependencyRelation)

	// --- 1. 继承链 ---
	for _, entry := range gc.Definitions {
		l.linkSuperChain(gc, relMap, entry.Element, entry.SuperclassSpan)
	}

	// --- 2. Mixin 目标 ---
	for _, m := range gc.Mixins() {
		for _, ref := range gc.MixinAnnotationTargets(m) {
			target, ok := gc.ResolveClass(ref.QualifiedName)
			if !ok {
				continue
			}
			l.addRel(relMap, model.Mixin, m.Class, target, ref.Location)
			l.linkSuperChain(gc, relMap, target, nil)
		}
	}

	// 转换为切片，按 Source/Target/Type 排序保证输出稳定
	result := make([]*model.DependencyRelation, 0, len(relMap))
	for _, rel := range relMap {
		result = append(result, rel)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Source.QualifiedName != b.Source.QualifiedName {
			return a.Source.QualifiedName < b.Source.QualifiedName
		}
		if a.Target.QualifiedName != b.Target.QualifiedName {
			return a.Target.QualifiedName < b.Target.QualifiedName
		}
		return a.Type < b.Type
	})
	return result
}

// linkSuperChain 沿父类向上连边，遇到已存在的边即停止 (同时避免环)
func (l *Linker) linkSuperChain(gc *core.GlobalContext, m map[string]*model.DependencyRelation, start *model.ClassSymbol, span *model.Location) {
	cur := start
	for cur != nil {
		parent, ok := gc.DeclaredSuperclass(cur)
		if !ok {
			return
		}
		if !l.addRel(m, model.Extend, cur, parent, span) {
			return
		}
		cur, span = parent, nil
	}
}

// 内部辅助工具：生成唯一Key并加入Map，返回是否为新边
func (l *Linker) addRel(m map[string]*model.DependencyRelation, typ model.DependencyType, src, tgt *model.ClassSymbol, loc *model.Location) bool {
	key := string(typ) + ":" + src.QualifiedName + "->" + tgt.QualifiedName
	if _, exists := m[key]; exists {
		return false
	}
	m[key] = &model.DependencyRelation{
		Type:     typ,
		Source:   src,
		Target:   tgt,
		Location: loc,
	}
	return true
}
