package core

import (
	"path/filepath"
	"strings"
)

// Language 分析语言标识
type Language string

const (
	LangJava Language = "java"
)

var languageExtensions = map[string]Language{
	".java": LangJava,
}

// LanguageFromPath 根据文件扩展名推断语言
func LanguageFromPath(path string) (Language, bool) {
	lang, ok := languageExtensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}
