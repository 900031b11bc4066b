package mixin

import (
	"github.com/CodMac/mixin-lens/model"
)

// fakeTable 内存符号表，供各检查的单元测试使用
type fakeTable struct {
	classes map[string]*model.ClassSymbol
	ready   bool
}

func newFakeTable() *fakeTable {
	return &fakeTable{classes: make(map[string]*model.ClassSymbol), ready: true}
}

// add 注册一个源码类，super 为空表示没有 extends
func (f *fakeTable) add(qn, super string) *model.ClassSymbol {
	c := &model.ClassSymbol{
		Kind:          model.Class,
		Name:          model.ShortName(qn),
		QualifiedName: qn,
		SuperclassRaw: model.ShortName(super),
		Superclass:    super,
		Origin:        model.OriginSource,
		Location:      &model.Location{FilePath: qn + ".java", StartLine: 1, EndLine: 1},
	}
	f.classes[qn] = c
	return c
}

func (f *fakeTable) addExternal(qn string) *model.ClassSymbol {
	c := &model.ClassSymbol{Kind: model.Class, Name: model.ShortName(qn), QualifiedName: qn, Origin: model.OriginExternal}
	f.classes[qn] = c
	return c
}

func (f *fakeTable) ResolveClass(qn string) (*model.ClassSymbol, bool) {
	c, ok := f.classes[qn]
	return c, ok
}

func (f *fakeTable) DeclaredSuperclass(c *model.ClassSymbol) (*model.ClassSymbol, bool) {
	if c == nil || c.Superclass == "" {
		return nil, false
	}
	return f.ResolveClass(c.Superclass)
}

func (f *fakeTable) MixinAnnotationTargets(m *model.MixinDeclaration) []model.TargetReference {
	return m.Targets
}

func (f *fakeTable) Ready() bool { return f.ready }

// mixinOf 构造一个 Mixin 声明：cls 为 Mixin 类 QN，super 为声明的父类，targets 为目标 QN
func (f *fakeTable) mixinOf(cls, super string, targets ...string) *model.MixinDeclaration {
	c := f.add(cls, super)
	m := &model.MixinDeclaration{
		Class:              c,
		DeclaredSuperclass: super,
		SuperclassSpan:     &model.Location{FilePath: cls + ".java", StartLine: 6, EndLine: 6, StartColumn: 38, EndColumn: 46},
	}
	for _, t := range targets {
		ref := model.TargetReference{Raw: model.ShortName(t)}
		if _, ok := f.classes[t]; ok {
			ref.QualifiedName = t
		}
		m.Targets = append(m.Targets, ref)
	}
	return m
}

// entityWorld Entity <- DemonWav, Entity <- Minecrell
func entityWorld() *fakeTable {
	f := newFakeTable()
	f.add("test.Entity", "")
	f.add("test.DemonWav", "test.Entity")
	f.add("test.Minecrell", "test.Entity")
	return f
}
