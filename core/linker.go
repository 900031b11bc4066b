package core

import (
	"fmt"

	"github.com/CodMac/mixin-lens/model"
)

// Linker 用于推导类型之间的关系，需要全局上下文。
type Linker interface {
	// LinkHierarchy 根据已绑定的全局上下文，推导出 EXTEND / MIXIN 关系
	LinkHierarchy(gc *GlobalContext) []*model.DependencyRelation
}

var linkerMap = make(map[Language]Linker)

// RegisterLinker 注册一个语言与其对应的 Linker
func RegisterLinker(lang Language, linker Linker) {
	linkerMap[lang] = linker
}

// GetLinker 根据语言类型获取对应的 Linker 实例。
func GetLinker(lang Language) (Linker, error) {
	linker, ok := linkerMap[lang]
	if !ok {
		return nil, fmt.Errorf("no linker registered for language: %s", lang)
	}

	return linker, nil
}
