package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
	"github.com/CodMac/mixin-lens/x/java"
)

func sampleDiagnostics() []model.Diagnostic {
	return []model.Diagnostic{
		{
			Inspection: model.InspectionSuperClass,
			Kind:       model.NotInHierarchy,
			Message:    "Cannot find 'Minecrell' in the hierarchy of target class 'DemonWav'",
			Mixin:      "test.SuperClassMixin",
			Target:     "test.DemonWav",
			Declared:   "test.Minecrell",
			Span:       &model.Location{FilePath: "test/SuperClassMixin.java", StartLine: 6, EndLine: 6, StartColumn: 38, EndColumn: 47},
		},
	}
}

func sampleContext(t *testing.T) (*core.GlobalContext, []*model.DependencyRelation) {
	t.Helper()
	gc := core.NewGlobalContext(java.NewJavaSymbolResolver())
	fc := core.NewFileContext("test/Entities.java")
	fc.PackageName = "test"
	entity := &model.ClassSymbol{Kind: model.Class, Name: "Entity", QualifiedName: "test.Entity", Origin: model.OriginSource}
	demon := &model.ClassSymbol{Kind: model.Class, Name: "DemonWav", QualifiedName: "test.DemonWav", Superclass: "test.Entity", Origin: model.OriginSource}
	mixin := &model.ClassSymbol{Kind: model.Class, Name: "SuperClassMixin", QualifiedName: "test.SuperClassMixin", Superclass: "test.Minecrell", Origin: model.OriginSource}
	object := &model.ClassSymbol{Kind: model.Class, Name: "Object", QualifiedName: "java.lang.Object", Origin: model.OriginBuiltin}
	for _, s := range []*model.ClassSymbol{entity, demon, mixin} {
		fc.AddDefinition(&core.DefinitionEntry{Element: s, ParentQN: "test"})
	}
	gc.RegisterFileContext(fc)

	rels := []*model.DependencyRelation{
		{Type: model.Extend, Source: demon, Target: entity},
		{Type: model.Extend, Source: entity, Target: object},
		{Type: model.Mixin, Source: mixin, Target: demon},
	}
	return gc, rels
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleDiagnostics()))

	assert.Equal(t,
		"test/SuperClassMixin.java:6:39: Cannot find 'Minecrell' in the hierarchy of target class 'DemonWav' [MixinSuperClass]\n"+
			"1 problem(s) found\n",
		buf.String())
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil))
	assert.Equal(t, "0 problem(s) found\n", buf.String())
}

func TestExport_JsonL(t *testing.T) {
	dir := t.TempDir()
	gc, rels := sampleContext(t)

	var buf bytes.Buffer
	res, err := NewExporter(dir, JsonL, true).Export(&buf, gc, rels, sampleDiagnostics())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Diags)
	assert.Equal(t, 2, res.Relations, "edge to java.lang.Object is skipped")

	f, err := os.Open(filepath.Join(dir, "diagnostics.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var lines []model.Diagnostic
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var d model.Diagnostic
		require.NoError(t, json.Unmarshal(sc.Bytes(), &d))
		lines = append(lines, d)
	}
	require.Len(t, lines, 1)
	assert.Equal(t, model.NotInHierarchy, lines[0].Kind)
	assert.Equal(t, "test.DemonWav", lines[0].Target)
	assert.Contains(t, buf.String(), "1 problem(s) found")
}

func TestExport_Mermaid(t *testing.T) {
	dir := t.TempDir()
	gc, rels := sampleContext(t)
	diags := sampleDiagnostics()

	res, err := NewExporter(dir, Mermaid, false).Export(&bytes.Buffer{}, gc, rels, diags)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Relations)

	html, err := os.ReadFile(filepath.Join(dir, "hierarchy.html"))
	require.NoError(t, err)
	s := string(html)
	assert.Contains(t, s, "subgraph n_test_Entities_java")
	assert.Contains(t, s, "n_test_DemonWav -- EXTEND --> n_test_Entity")
	assert.Contains(t, s, "n_test_SuperClassMixin -. MIXIN: NOT_IN_HIERARCHY .-> n_test_DemonWav")
	assert.Contains(t, s, `n_java_lang_Object(["Object <small>(CLASS)</small>"])`)
}

func TestExporter_GraphSize(t *testing.T) {
	gc, rels := sampleContext(t)
	gc.AddSymbol(&model.ClassSymbol{Kind: model.Class, Name: "String", QualifiedName: "java.lang.String", Origin: model.OriginBuiltin})

	// 未参与关系的内置符号不计入
	nodes, edges := NewExporter(t.TempDir(), Mermaid, false).GraphSize(gc, rels)
	assert.Equal(t, 4, nodes)
	assert.Equal(t, 3, edges)

	nodes, edges = NewExporter(t.TempDir(), Mermaid, true).GraphSize(gc, rels)
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 2, edges)
}

func TestParseOutType(t *testing.T) {
	got, err := ParseOutType("")
	require.NoError(t, err)
	assert.Equal(t, Text, got)

	_, err = ParseOutType("xml")
	assert.Error(t, err)
}
