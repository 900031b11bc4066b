package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

// dotResolver 最小的 resolver，只负责 QN 拼接与包注册
type dotResolver struct{}

func (dotResolver) BuildQualifiedName(parentQN, name string) string {
	if parentQN == "" {
		return name
	}
	return parentQN + "." + name
}

func (dotResolver) ResolveType(*core.GlobalContext, *core.FileContext, string, string) (string, model.Origin, bool) {
	return "", "", false
}

func (dotResolver) RegisterPackage(gc *core.GlobalContext, pkg string) { gc.AddPackage(pkg) }

func fileWith(path, pkg string, names ...string) *core.FileContext {
	fc := core.NewFileContext(path)
	fc.PackageName = pkg
	for _, n := range names {
		fc.AddDefinition(&core.DefinitionEntry{
			Element: &model.ClassSymbol{
				Kind:          model.Class,
				Name:          n,
				QualifiedName: pkg + "." + n,
				Path:          path,
				Origin:        model.OriginSource,
			},
		})
	}
	return fc
}

func TestGlobalContext_FirstRegisteredWins(t *testing.T) {
	gc := core.NewGlobalContext(dotResolver{})
	first := fileWith("a/Dup.java", "p", "Dup")
	second := fileWith("b/Dup.java", "p", "Dup", "Other")
	gc.RegisterFileContext(first)
	gc.RegisterFileContext(second)

	entry, ok := gc.FindByQualifiedName("p.Dup")
	require.True(t, ok)
	assert.Equal(t, "a/Dup.java", entry.Element.Path)
	assert.Len(t, gc.Definitions, 2)
	assert.True(t, gc.HasPackage("p"))

	sym, ok := gc.ResolveClass("p.Other")
	require.True(t, ok)
	assert.Equal(t, model.OriginSource, sym.Origin)
}

func TestGlobalContext_AddSymbolKeepsExisting(t *testing.T) {
	gc := core.NewGlobalContext(dotResolver{})
	gc.RegisterFileContext(fileWith("p/A.java", "p", "A"))

	gc.AddSymbol(&model.ClassSymbol{QualifiedName: "p.A", Origin: model.OriginExternal})
	gc.AddSymbol(&model.ClassSymbol{QualifiedName: "q.B", Origin: model.OriginExternal})

	a, _ := gc.ResolveClass("p.A")
	assert.Equal(t, model.OriginSource, a.Origin)
	_, ok := gc.ResolveClass("q.B")
	assert.True(t, ok)

	var qns []string
	for _, s := range gc.Symbols() {
		qns = append(qns, s.QualifiedName)
	}
	assert.Equal(t, []string{"p.A", "q.B"}, qns)
}

func TestGlobalContext_SealAndMixins(t *testing.T) {
	gc := core.NewGlobalContext(dotResolver{})
	assert.False(t, gc.Ready())

	gc.AddMixin(&model.MixinDeclaration{Class: &model.ClassSymbol{QualifiedName: "z.ZMixin"}})
	gc.AddMixin(&model.MixinDeclaration{Class: &model.ClassSymbol{QualifiedName: "a.AMixin"}})
	gc.Seal()

	assert.True(t, gc.Ready())
	mixins := gc.Mixins()
	require.Len(t, mixins, 2)
	assert.Equal(t, "a.AMixin", mixins[0].QualifiedName())
}

func TestGlobalContext_DeclaredSuperclass(t *testing.T) {
	gc := core.NewGlobalContext(dotResolver{})
	fc := fileWith("p/A.java", "p", "A", "B")
	fc.Definitions[1].Element.Superclass = "p.A"
	gc.RegisterFileContext(fc)

	b, _ := gc.ResolveClass("p.B")
	parent, ok := gc.DeclaredSuperclass(b)
	require.True(t, ok)
	assert.Equal(t, "p.A", parent.QualifiedName)

	a, _ := gc.ResolveClass("p.A")
	_, ok = gc.DeclaredSuperclass(a)
	assert.False(t, ok)
}

func TestFileContext_Clone(t *testing.T) {
	fc := fileWith("p/A.java", "p", "A")
	fc.Definitions[0].Element.Fields = []string{"x"}
	fc.AddImport("*", &core.ImportEntry{RawImportPath: "java.util.*", IsWildcard: true})

	cp := fc.Clone()
	cp.Definitions[0].Element.Superclass = "p.Base"
	cp.Definitions[0].Element.Fields[0] = "y"

	assert.Empty(t, fc.Definitions[0].Element.Superclass)
	assert.Equal(t, []string{"x"}, fc.Definitions[0].Element.Fields)
	entries, ok := cp.FindByShortName("A")
	require.True(t, ok)
	assert.Same(t, cp.Definitions[0], entries[0])
	assert.Equal(t, []string{"java.util"}, cp.WildcardImports())
}

func TestFileContext_WildcardImportsSkipsStatic(t *testing.T) {
	fc := core.NewFileContext("A.java")
	fc.AddImport("*", &core.ImportEntry{RawImportPath: "a.b.*", IsWildcard: true})
	fc.AddImport("*", &core.ImportEntry{RawImportPath: "a.b.C.*", IsWildcard: true, IsStatic: true})
	assert.Equal(t, []string{"a.b"}, fc.WildcardImports())
}

func TestLanguageFromPath(t *testing.T) {
	lang, ok := core.LanguageFromPath("src/Foo.JAVA")
	assert.True(t, ok)
	assert.Equal(t, core.LangJava, lang)

	_, ok = core.LanguageFromPath("build.gradle")
	assert.False(t, ok)
}

func TestNewSuppressor_Default(t *testing.T) {
	s := core.NewSuppressor(core.Language("none"), core.LevelBalanced)
	assert.Equal(t, core.DefaultSuppressor{Level: core.LevelBalanced}, s)
	assert.False(t, s.IsSuppressed(model.Diagnostic{}, nil))
}
