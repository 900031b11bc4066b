package java

import "github.com/CodMac/mixin-lens/core"

// 引入本包 (import _ ".../x/java") 即完成 Java 各阶段实现的注册
func init() {
	core.RegisterSymbolResolver(core.LangJava, NewJavaSymbolResolver())
	core.RegisterCollector(core.LangJava, NewJavaCollector())
	core.RegisterBinder(core.LangJava, NewJavaBinder())
	core.RegisterLinker(core.LangJava, NewJavaLinker())
	core.RegisterSuppressor(core.LangJava, func(level core.FilterLevel) core.Suppressor {
		return NewJavaSuppressor(level)
	})
}
