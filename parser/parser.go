package parser

import (
	"fmt"
	"os"

	"github.com/CodMac/mixin-lens/core"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Parser 单协程持有的语法解析器。
// 调用方拥有返回的 Tree，使用完毕后必须 Close。
type Parser interface {
	ParseFile(filePath string) (*sitter.Tree, []byte, error)
	ParseBytes(source []byte) (*sitter.Tree, error)
	Close()
}

type TreeSitterParser struct {
	lang   core.Language
	parser *sitter.Parser
}

// GetLanguage 返回语言对应的 tree-sitter 语法
func GetLanguage(lang core.Language) (*sitter.Language, error) {
	switch lang {
	case core.LangJava:
		return sitter.NewLanguage(tree_sitter_java.Language()), nil
	}
	return nil, fmt.Errorf("no tree-sitter grammar for language: %s", lang)
}

func NewParser(lang core.Language) (*TreeSitterParser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(tsLang); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}
	return &TreeSitterParser{lang: lang, parser: p}, nil
}

func (t *TreeSitterParser) ParseFile(filePath string) (*sitter.Tree, []byte, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	tree, err := t.ParseBytes(source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	return tree, source, nil
}

func (t *TreeSitterParser) ParseBytes(source []byte) (*sitter.Tree, error) {
	tree := t.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %s source", t.lang)
	}
	return tree, nil
}

func (t *TreeSitterParser) Close() {
	t.parser.Close()
}
