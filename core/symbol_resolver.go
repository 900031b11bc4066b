package core

import (
	"fmt"

	"github.com/CodMac/mixin-lens/model"
)

// --- 语言特有的符号解析接口 ---

type SymbolResolver interface {
	// BuildQualifiedName 根据父节点和当前名构建 QN
	BuildQualifiedName(parentQN, name string) string

	// ResolveType 将 scopeQN 作用域内书写的类型文本绑定为 QN。
	// ok=false 表示无法给出任何 QN；origin 指示结果来自源码、内置表还是外部引用。
	ResolveType(gc *GlobalContext, fc *FileContext, scopeQN, raw string) (qn string, origin model.Origin, ok bool)

	// RegisterPackage 注册包/命名空间逻辑
	RegisterPackage(gc *GlobalContext, packageName string)
}

var symbolResolverMap = make(map[Language]SymbolResolver)

// RegisterSymbolResolver 注册一个语言与其对应的 SymbolResolver
func RegisterSymbolResolver(lang Language, resolver SymbolResolver) {
	symbolResolverMap[lang] = resolver
}

// GetSymbolResolver 根据语言类型获取对应的 SymbolResolver 实例。
func GetSymbolResolver(lang Language) (SymbolResolver, error) {
	resolver, ok := symbolResolverMap[lang]
	if !ok {
		return nil, fmt.Errorf("no SymbolResolver for language: %s", lang)
	}

	return resolver, nil
}
