package model

// --- 依赖关系类型 (Dependency Relation Types) ---

// DependencyType 是表示依赖关系的字符串常量
type DependencyType string

const (
	// Contain 包含: 物理或逻辑上的归属关系
	// e.g., [Java: Source(Package) -> Target(Class)]
	Contain DependencyType = "CONTAIN"

	// Extend 继承: 类与类之间的继承
	// e.g., [Java: Source(Class) -> Target(Class)]
	Extend DependencyType = "EXTEND"

	// Mixin 混入: Mixin 类织入目标类
	// e.g., [Java: Source(MixinClass) -> Target(TargetClass)]
	Mixin DependencyType = "MIXIN"
)

// DependencyRelation 描述 Source 和 Target 之间的一个关系，用于层级图导出
type DependencyRelation struct {
	// Type: 关系类型 (e.g., EXTEND, MIXIN)
	Type DependencyType `json:"Type"`

	// Source: 关系的发起方（子类、Mixin 类）
	Source *ClassSymbol `json:"Source"`

	// Target: 关系的指向方（父类、目标类）
	Target *ClassSymbol `json:"Target"`

	// Location: 关系在源码中的位置 (extends 子句或 @Mixin 中的类引用)
	Location *Location `json:"Location"`

	// Details: 附加描述
	Details string `json:"Details,omitempty"`
}
