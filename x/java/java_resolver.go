package java

import (
	"strings"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

type SymbolResolver struct{}

func NewJavaSymbolResolver() *SymbolResolver {
	return &SymbolResolver{}
}

// =============================================================================
// 1. 基础接口实现 (Basic Interface)
// =============================================================================

func (j *SymbolResolver) BuildQualifiedName(parentQN, name string) string {
	if parentQN == "" || parentQN == "." {
		return name
	}
	return parentQN + "." + name
}

// RegisterPackage 在 GlobalContext 写锁内被调用，逐级注册 "a" / "a.b" / "a.b.c"
func (j *SymbolResolver) RegisterPackage(gc *core.GlobalContext, packageName string) {
	if packageName == "" {
		return
	}
	parts := strings.Split(packageName, ".")
	for i := range parts {
		gc.AddPackage(strings.Join(parts[:i+1], "."))
	}
}

// ResolveType 按 Java 的名字查找顺序绑定类型文本:
// 嵌套类型 -> 单类型导入 -> 同包 -> 通配符导入 -> java.lang
func (j *SymbolResolver) ResolveType(gc *core.GlobalContext, fc *core.FileContext, scopeQN, raw string) (string, model.Origin, bool) {
	name := j.cleanTypeName(raw)
	if name == "" || j.IsPrimitive(name) {
		return "", "", false
	}

	if strings.Contains(name, ".") {
		return j.resolveQualified(gc, fc, scopeQN, name)
	}
	return j.resolveSimple(gc, fc, scopeQN, name)
}

// =============================================================================
// 2. 核心查找流程 (Core Resolution Flow)
// =============================================================================

func (j *SymbolResolver) resolveSimple(gc *core.GlobalContext, fc *core.FileContext, scopeQN, name string) (string, model.Origin, bool) {
	// 1. 词法作用域：由内向外查找嵌套类型，类型变量直接视为无法绑定
	for scope := scopeQN; scope != ""; {
		entry, ok := gc.FindByQualifiedName(scope)
		if !ok {
			break
		}
		for _, tp := range entry.TypeParams {
			if tp == name {
				return "", "", false
			}
		}
		if sym, ok := gc.ResolveClass(j.BuildQualifiedName(scope, name)); ok {
			return sym.QualifiedName, sym.Origin, true
		}
		if entry.Element.Name == name {
			return entry.Element.QualifiedName, entry.Element.Origin, true
		}
		scope = entry.ParentQN
	}

	// 2. 单类型导入 (例如 "Entity" -> "net.minecraft.entity.Entity")
	if imps, ok := fc.Imports[name]; ok {
		for _, imp := range imps {
			if imp.IsStatic {
				continue
			}
			return j.lookupOrExternal(gc, imp.RawImportPath)
		}
	}

	// 3. 同包 (隐式引用同包下的其他类)
	if sym, ok := gc.ResolveClass(j.BuildQualifiedName(fc.PackageName, name)); ok {
		return sym.QualifiedName, sym.Origin, true
	}

	// 4. 通配符导入，只接受已知符号
	for _, pkg := range fc.WildcardImports() {
		if sym, ok := gc.ResolveClass(j.BuildQualifiedName(pkg, name)); ok {
			return sym.QualifiedName, sym.Origin, true
		}
	}

	// 5. java.lang 隐式导入
	if qn, ok := JavaLangQN(name); ok {
		if sym, found := gc.ResolveClass(qn); found {
			return sym.QualifiedName, sym.Origin, true
		}
		return qn, model.OriginBuiltin, true
	}

	return "", "", false
}

// resolveQualified 处理 "Outer.Inner" 与 "a.b.Foo" 两种写法
func (j *SymbolResolver) resolveQualified(gc *core.GlobalContext, fc *core.FileContext, scopeQN, name string) (string, model.Origin, bool) {
	if sym, ok := gc.ResolveClass(name); ok {
		return sym.QualifiedName, sym.Origin, true
	}

	head, rest, _ := strings.Cut(name, ".")
	if headQN, origin, ok := j.resolveSimple(gc, fc, scopeQN, head); ok {
		qn := headQN + "." + rest
		if sym, found := gc.ResolveClass(qn); found {
			return sym.QualifiedName, sym.Origin, true
		}
		if origin == model.OriginSource {
			// 源码类型的成员类型都已采集，找不到即为无法绑定
			return "", "", false
		}
		return qn, model.OriginExternal, true
	}

	// 首段是包名：按全限定名视为外部引用
	if j.looksLikePackage(head) {
		return j.lookupOrExternal(gc, name)
	}
	return "", "", false
}

func (j *SymbolResolver) lookupOrExternal(gc *core.GlobalContext, qn string) (string, model.Origin, bool) {
	if sym, ok := gc.ResolveClass(qn); ok {
		return sym.QualifiedName, sym.Origin, true
	}
	if _, ok := LookupBuiltin(qn); ok {
		return qn, model.OriginBuiltin, true
	}
	return qn, model.OriginExternal, true
}

// =============================================================================
// 3. 底层工具 (Utilities)
// =============================================================================

// cleanTypeName 去掉泛型实参、数组维度、类型注解与空白，二进制名中的 '$' 视为 '.'
func (j *SymbolResolver) cleanTypeName(raw string) string {
	s := raw
	if idx := strings.Index(s, "<"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, "[]", "")
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if !strings.HasPrefix(f, "@") {
			kept = append(kept, f)
		}
	}
	s = strings.Join(kept, "")
	s = strings.ReplaceAll(s, "$", ".")
	return strings.Trim(s, ".")
}

func (j *SymbolResolver) looksLikePackage(segment string) bool {
	return segment != "" && segment[0] >= 'a' && segment[0] <= 'z'
}

func (j *SymbolResolver) IsPrimitive(t string) bool {
	switch t {
	case "int", "long", "short", "byte", "char", "boolean", "float", "double", "void", "var":
		return true
	}
	return false
}
