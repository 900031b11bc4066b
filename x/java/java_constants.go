package java

// Mixin 框架相关的注解全限定名
const (
	MixinAnnotation            = "org.spongepowered.asm.mixin.Mixin"
	AccessorAnnotation         = "org.spongepowered.asm.mixin.gen.Accessor"
	SuppressWarningsAnnotation = "java.lang.SuppressWarnings"
	JavaLangObject             = "java.lang.Object"
)

// 注解元素名
const (
	AttrValue   = "value"
	AttrTargets = "targets"
)

// 需要递归进入的类型体节点
var typeBodyKinds = map[string]bool{
	"class_body":             true,
	"interface_body":         true,
	"enum_body":              true,
	"enum_body_declarations": true,
	"annotation_type_body":   true,
}
