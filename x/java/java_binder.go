package java

import (
	"sort"
	"strings"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

type Binder struct {
	resolver *SymbolResolver
}

func NewJavaBinder() *Binder {
	return &Binder{
		resolver: NewJavaSymbolResolver(),
	}
}

// BindSymbols 在所有文件注册完毕后执行，单协程运行，结束时封存快照
func (b *Binder) BindSymbols(gc *core.GlobalContext) {
	// 1. 内置符号 (java.lang / java.util ...) 先入表，供后续查找
	for _, sym := range BuiltinSymbols() {
		gc.AddSymbol(sym)
	}

	mixinQN := b.optionOr(gc.Options.MixinAnnotation, MixinAnnotation)
	accessorQN := b.optionOr(gc.Options.AccessorAnnotation, AccessorAnnotation)

	paths := make([]string, 0, len(gc.FileContexts))
	for p := range gc.FileContexts {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	// 2. 继承信息消解
	for _, p := range paths {
		fCtx := gc.FileContexts[p]
		for _, entry := range b.ownedDefinitions(gc, fCtx) {
			b.bindHeritage(gc, fCtx, entry)
		}
	}

	// 3. Mixin 视图构建 (依赖第 2 步得到的父类 QN)
	for _, p := range paths {
		fCtx := gc.FileContexts[p]
		for _, entry := range b.ownedDefinitions(gc, fCtx) {
			if m := b.buildMixin(gc, fCtx, entry, mixinQN, accessorQN); m != nil {
				gc.AddMixin(m)
			}
		}
	}

	gc.Seal()
}

// ownedDefinitions 过滤掉重复 QN 中未被全局索引采纳的定义
func (b *Binder) ownedDefinitions(gc *core.GlobalContext, fCtx *core.FileContext) []*core.DefinitionEntry {
	var out []*core.DefinitionEntry
	for _, entry := range fCtx.Definitions {
		if owner, ok := gc.FindByQualifiedName(entry.Element.QualifiedName); ok && owner == entry {
			out = append(out, entry)
		}
	}
	return out
}

func (b *Binder) bindHeritage(gc *core.GlobalContext, fCtx *core.FileContext, entry *core.DefinitionEntry) {
	elem := entry.Element

	// extends 子句不在类体作用域内，从外层开始查找
	elem.Superclass = ""
	if elem.SuperclassRaw != "" {
		if qn, origin, ok := b.resolver.ResolveType(gc, fCtx, entry.ParentQN, elem.SuperclassRaw); ok && qn != elem.QualifiedName {
			elem.Superclass = qn
			b.ensureSymbol(gc, qn, origin, model.Class)
		}
	}

	elem.Interfaces = nil
	for _, raw := range entry.InterfacesRaw {
		if qn, origin, ok := b.resolver.ResolveType(gc, fCtx, entry.ParentQN, raw); ok {
			elem.Interfaces = append(elem.Interfaces, qn)
			b.ensureSymbol(gc, qn, origin, model.Interface)
		}
	}
}

func (b *Binder) buildMixin(gc *core.GlobalContext, fCtx *core.FileContext, entry *core.DefinitionEntry, mixinQN, accessorQN string) *model.MixinDeclaration {
	var mixinAnno *core.AnnotationEntry
	var suppressions []string
	for _, anno := range entry.Annotations {
		switch b.annotationQN(gc, fCtx, entry.ParentQN, anno) {
		case mixinQN:
			if mixinAnno == nil {
				mixinAnno = anno
			}
		case SuppressWarningsAnnotation:
			for _, v := range anno.Values[AttrValue] {
				if v.Kind == core.ValueString {
					suppressions = append(suppressions, v.Text)
				}
			}
		}
	}
	if mixinAnno == nil {
		return nil
	}

	elem := entry.Element
	m := &model.MixinDeclaration{
		Class:        elem,
		Targets:      b.bindTargets(gc, fCtx, entry, mixinAnno),
		Suppressions: suppressions,
	}
	if elem.Superclass != "" && !isJavaLangObject(elem.Superclass) {
		m.DeclaredSuperclass = elem.Superclass
		m.SuperclassSpan = entry.SuperclassSpan
	}

	// 方法上的 @Accessor，作用域为 Mixin 类自身
	for _, method := range entry.Methods {
		for _, anno := range method.Annotations {
			if b.annotationQN(gc, fCtx, elem.QualifiedName, anno) != accessorQN {
				continue
			}
			acc := model.AccessorDeclaration{MethodName: method.Name, Span: anno.Location}
			for _, v := range anno.Values[AttrValue] {
				if v.Kind == core.ValueString {
					acc.Value = v.Text
					break
				}
			}
			m.Accessors = append(m.Accessors, acc)
		}
	}
	return m
}

// bindTargets 绑定 value 中的类字面量与 targets 中的字符串 (二进制名)，按源码书写顺序排列
func (b *Binder) bindTargets(gc *core.GlobalContext, fCtx *core.FileContext, entry *core.DefinitionEntry, anno *core.AnnotationEntry) []model.TargetReference {
	var values []core.AnnotationValue
	for _, v := range anno.Values[AttrValue] {
		if v.Kind == core.ValueClassLiteral {
			values = append(values, v)
		}
	}
	for _, v := range anno.Values[AttrTargets] {
		if v.Kind == core.ValueString {
			v.Text = strings.ReplaceAll(strings.TrimSpace(v.Text), "/", ".")
			values = append(values, v)
		}
	}
	sort.SliceStable(values, func(i, j int) bool {
		return positionBefore(values[i].Location, values[j].Location)
	})

	refs := make([]model.TargetReference, 0, len(values))
	for _, v := range values {
		ref := model.TargetReference{Raw: v.Text, Location: v.Location}
		if qn, origin, ok := b.resolver.ResolveType(gc, fCtx, entry.ParentQN, v.Text); ok {
			ref.QualifiedName = qn
			b.ensureSymbol(gc, qn, origin, model.Class)
		}
		refs = append(refs, ref)
	}
	return refs
}

// positionBefore 缺少位置的值保持原有相对顺序
func positionBefore(a, b *model.Location) bool {
	if a == nil || b == nil {
		return false
	}
	if a.StartLine != b.StartLine {
		return a.StartLine < b.StartLine
	}
	return a.StartColumn < b.StartColumn
}

// annotationQN 注解名的 QN，无法解析时返回空串
func (b *Binder) annotationQN(gc *core.GlobalContext, fCtx *core.FileContext, scopeQN string, anno *core.AnnotationEntry) string {
	qn, _, ok := b.resolver.ResolveType(gc, fCtx, scopeQN, anno.Name)
	if !ok {
		return ""
	}
	return qn
}

// ensureSymbol 外部引用第一次出现时登记为 EXTERNAL 符号
func (b *Binder) ensureSymbol(gc *core.GlobalContext, qn string, origin model.Origin, kind model.ElementKind) {
	if origin != model.OriginExternal {
		return
	}
	if _, ok := gc.ResolveClass(qn); ok {
		return
	}
	gc.AddSymbol(&model.ClassSymbol{
		Kind:          kind,
		Name:          model.ShortName(qn),
		QualifiedName: qn,
		Origin:        model.OriginExternal,
	})
}

func (b *Binder) optionOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
