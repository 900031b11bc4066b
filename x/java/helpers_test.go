package java_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/parser"
	"github.com/CodMac/mixin-lens/x/java"
)

func getTestFilePath(name string) string {
	currentDir, _ := filepath.Abs(".")
	return filepath.Join(currentDir, "testdata", name)
}

func getJavaParser(t *testing.T) *parser.TreeSitterParser {
	t.Helper()
	javaParser, err := parser.NewParser(core.LangJava)
	require.NoError(t, err)
	t.Cleanup(javaParser.Close)
	return javaParser
}

// collectSource 解析一段源码并返回采集结果
func collectSource(t *testing.T, relPath, src string) *core.FileContext {
	t.Helper()
	p := getJavaParser(t)
	source := []byte(src)
	tree, err := p.ParseBytes(source)
	require.NoError(t, err)
	defer tree.Close()

	fCtx, err := java.NewJavaCollector().CollectDefinitions(tree.RootNode(), relPath, &source)
	require.NoError(t, err)
	return fCtx
}

// buildProject 采集 testdata/<dir> 下的所有 .java 文件并完成绑定
func buildProject(t *testing.T, dir string) *core.GlobalContext {
	t.Helper()
	root := getTestFilePath(dir)
	var files []string
	require.NoError(t, filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return err
	}))
	sort.Strings(files)

	sources := make(map[string]string, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		sources[filepath.ToSlash(rel)] = string(b)
	}
	return bindSources(t, sources)
}

// bindSources 以内存源码构建并封存一个 GlobalContext
func bindSources(t *testing.T, sources map[string]string) *core.GlobalContext {
	t.Helper()
	return bindSourcesWith(t, sources, core.Options{})
}

func bindSourcesWith(t *testing.T, sources map[string]string, opts core.Options) *core.GlobalContext {
	t.Helper()
	paths := make([]string, 0, len(sources))
	for p := range sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	gc := core.NewGlobalContext(java.NewJavaSymbolResolver())
	gc.Options = opts
	for _, p := range paths {
		gc.RegisterFileContext(collectSource(t, p, sources[p]))
	}
	java.NewJavaBinder().BindSymbols(gc)
	require.True(t, gc.Ready())
	return gc
}
