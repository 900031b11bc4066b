package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/mixin-lens/core"
)

func TestParseBytes(t *testing.T) {
	p, err := NewParser(core.LangJava)
	require.NoError(t, err)
	defer p.Close()

	tree, err := p.ParseBytes([]byte("package a; class A extends B {}"))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.java")
	require.NoError(t, os.WriteFile(path, []byte("class A {}"), 0o644))

	p, err := NewParser(core.LangJava)
	require.NoError(t, err)
	defer p.Close()

	tree, src, err := p.ParseFile(path)
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "class A {}", string(src))

	_, _, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.java"))
	assert.Error(t, err)
}

func TestGetLanguage_Unknown(t *testing.T) {
	_, err := NewParser(core.Language("cobol"))
	assert.EqualError(t, err, "no tree-sitter grammar for language: cobol")
}
