package core

import "github.com/CodMac/mixin-lens/model"

// FilterLevel 定义诊断过滤的严苛程度
type FilterLevel int

const (
	LevelRaw      FilterLevel = iota // 不进行任何过滤，忽略 @SuppressWarnings
	LevelBalanced                    // 遵守 Mixin 类上的 @SuppressWarnings
)

// Suppressor 判断一条诊断是否被源码显式抑制。
// 实例创建后只读，可被同一次分析的多个检查协程并发调用。
type Suppressor interface {
	IsSuppressed(d model.Diagnostic, m *model.MixinDeclaration) bool
}

// SuppressorFactory 按过滤等级创建 Suppressor，每次分析各持一份
type SuppressorFactory func(level FilterLevel) Suppressor

var suppressorMap = make(map[Language]SuppressorFactory)

// RegisterSuppressor 注册一个语言与其对应的 Suppressor 工厂
func RegisterSuppressor(lang Language, factory SuppressorFactory) {
	suppressorMap[lang] = factory
}

// NewSuppressor 根据语言类型创建一个指定等级的 Suppressor。
func NewSuppressor(lang Language, level FilterLevel) Suppressor {
	factory, ok := suppressorMap[lang]
	if !ok {
		// 如果没注册，返回一个默认不进行过滤的实现
		return DefaultSuppressor{Level: level}
	}

	return factory(level)
}

// DefaultSuppressor 提供基础的等级字段，供各语言实现嵌入
type DefaultSuppressor struct {
	Level FilterLevel
}

func (DefaultSuppressor) IsSuppressed(model.Diagnostic, *model.MixinDeclaration) bool {
	return false
}
