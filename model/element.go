package model

// --- 代码元素类型 (Code Element Kinds) ---

// ElementKind 是表示代码实体类型的字符串常量
type ElementKind string

const (
	File        ElementKind = "FILE"       // 基本结构体        -> 源文件
	Package     ElementKind = "PACKAGE"    // 基本结构体        -> 包
	Class       ElementKind = "CLASS"      // 面向对象/复合类型 -> 类
	Interface   ElementKind = "INTERFACE"  // 面向对象/复合类型 -> 接口
	Enum        ElementKind = "ENUM"       // 面向对象/复合类型 -> 枚举
	KAnnotation ElementKind = "ANNOTATION" // 面向对象/复合类型 -> 注解类型 (@interface)
	Record      ElementKind = "RECORD"     // 面向对象/复合类型 -> record
	Field       ElementKind = "FIELD"      // 存储和声明        -> 类成员字段
	Method      ElementKind = "METHOD"     // 可执行体          -> 类方法
	Unknown     ElementKind = "UNKNOWN"    // 未知类型
)

// IsType 判断是否为可以参与继承关系的类型声明
func (k ElementKind) IsType() bool {
	switch k {
	case Class, Interface, Enum, KAnnotation, Record:
		return true
	}
	return false
}

// Origin 描述符号的来源，决定其继承信息是否完整
type Origin string

const (
	OriginSource   Origin = "SOURCE"   // 源码中声明，继承信息完整
	OriginBuiltin  Origin = "BUILTIN"  // JDK 内置表，继承信息完整
	OriginExternal Origin = "EXTERNAL" // 仅通过导入/全限定名引用，继承信息未知
)

// Location 描述了代码元素或诊断在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// ClassSymbol 是一次分析快照中某个类型的只读视图
type ClassSymbol struct {
	Kind          ElementKind `json:"Kind"`                    // Kind: CLASS / INTERFACE / ENUM ...
	Name          string      `json:"Name"`                    // Name: 短名称 (e.g., "DemonWav")
	QualifiedName string      `json:"QualifiedName"`           // QualifiedName: 全限定名 (e.g., "test.DemonWav")
	Path          string      `json:"Path,omitempty"`          // Path: 所在文件 (相对于项目根目录)
	SuperclassRaw string      `json:"SuperclassRaw,omitempty"` // SuperclassRaw: extends 后书写的原始文本
	Superclass    string      `json:"Superclass,omitempty"`    // Superclass: 绑定后的父类 QN, 为空表示无父类或无法绑定
	Interfaces    []string    `json:"Interfaces,omitempty"`    // Interfaces: 绑定后的接口 QN (本检查器不使用)
	Fields        []string    `json:"Fields,omitempty"`        // Fields: 声明的字段名
	Origin        Origin      `json:"Origin"`                  // Origin: 来源
	Location      *Location   `json:"Location,omitempty"`      // Location: 声明位置
}

// SuperclassUnbound extends 已书写但无法绑定到任何 QN
func (c *ClassSymbol) SuperclassUnbound() bool {
	return c.SuperclassRaw != "" && c.Superclass == ""
}

// HasField 只在 SOURCE 符号上有意义，其余来源的字段表未知
func (c *ClassSymbol) HasField(name string) bool {
	for _, f := range c.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// ShortName 取 QN 的最后一段
func ShortName(qn string) string {
	for i := len(qn) - 1; i >= 0; i-- {
		if qn[i] == '.' {
			return qn[i+1:]
		}
	}
	return qn
}
