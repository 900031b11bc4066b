package core

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/CodMac/mixin-lens/model"
)

// Options 影响绑定阶段的可配置项，为空时使用语言默认值
type Options struct {
	MixinAnnotation    string
	AccessorAnnotation string
}

// GlobalContext 是一次分析的符号表快照。
// 采集与绑定阶段可写；Seal 之后只读，可被任意多个检查协程并发读取。
type GlobalContext struct {
	FileContexts     map[string]*FileContext
	Definitions      []*DefinitionEntry
	qualifiedNameMap map[string]*DefinitionEntry
	symbols          map[string]*model.ClassSymbol // SOURCE + BUILTIN + EXTERNAL
	packages         map[string]struct{}
	mixins           []*model.MixinDeclaration
	resolver         SymbolResolver // 持有具体语言的解析器
	Options          Options
	mutex            sync.RWMutex
	sealed           atomic.Bool
}

func NewGlobalContext(resolver SymbolResolver) *GlobalContext {
	return &GlobalContext{
		FileContexts:     make(map[string]*FileContext),
		Definitions:      make([]*DefinitionEntry, 0),
		qualifiedNameMap: make(map[string]*DefinitionEntry),
		symbols:          make(map[string]*model.ClassSymbol),
		packages:         make(map[string]struct{}),
		resolver:         resolver,
	}
}

// RegisterFileContext 将文件采集结果同步到全局索引，包名交给 resolver 处理
func (gc *GlobalContext) RegisterFileContext(fc *FileContext) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	gc.FileContexts[fc.FilePath] = fc

	// 1. 委托 Resolver 处理包/命名空间注册 (此时已持有写锁)
	gc.resolver.RegisterPackage(gc, fc.PackageName)

	// 2. 注册文件内定义，重复 QN 以先注册者为准
	for _, entry := range fc.Definitions {
		qn := entry.Element.QualifiedName
		if _, ok := gc.qualifiedNameMap[qn]; ok {
			continue
		}
		gc.Definitions = append(gc.Definitions, entry)
		gc.qualifiedNameMap[qn] = entry
		gc.symbols[qn] = entry.Element
	}
}

// AddPackage 只能在持有写锁时调用 (RegisterPackage 回调)
func (gc *GlobalContext) AddPackage(pkg string) {
	if pkg != "" {
		gc.packages[pkg] = struct{}{}
	}
}

// HasPackage 只能在持有锁或 Seal 之后调用
func (gc *GlobalContext) HasPackage(pkg string) bool {
	_, ok := gc.packages[pkg]
	return ok
}

// AddSymbol 注册内置或外部符号，已存在的 QN 不会被覆盖
func (gc *GlobalContext) AddSymbol(sym *model.ClassSymbol) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	if _, ok := gc.symbols[sym.QualifiedName]; !ok {
		gc.symbols[sym.QualifiedName] = sym
	}
}

func (gc *GlobalContext) AddMixin(m *model.MixinDeclaration) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	gc.mixins = append(gc.mixins, m)
}

// Mixins 按 QN 排序返回
func (gc *GlobalContext) Mixins() []*model.MixinDeclaration {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()
	out := make([]*model.MixinDeclaration, len(gc.mixins))
	copy(out, gc.mixins)
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName() < out[j].QualifiedName() })
	return out
}

func (gc *GlobalContext) FindByQualifiedName(qn string) (*DefinitionEntry, bool) {
	entry, ok := gc.qualifiedNameMap[qn]
	return entry, ok
}

func (gc *GlobalContext) BuildQualifiedName(parentQN, name string) string {
	return gc.resolver.BuildQualifiedName(parentQN, name)
}

func (gc *GlobalContext) Resolver() SymbolResolver { return gc.resolver }

// Seal 标记快照已完整绑定，之后不再写入
func (gc *GlobalContext) Seal() { gc.sealed.Store(true) }

// Ready 快照是否可以交给检查器
func (gc *GlobalContext) Ready() bool { return gc.sealed.Load() }

// --- 检查器所需的符号表原语 ---

// ResolveClass 按 QN 查找符号
func (gc *GlobalContext) ResolveClass(qn string) (*model.ClassSymbol, bool) {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()
	sym, ok := gc.symbols[qn]
	return sym, ok
}

// DeclaredSuperclass 返回已绑定的声明父类
func (gc *GlobalContext) DeclaredSuperclass(c *model.ClassSymbol) (*model.ClassSymbol, bool) {
	if c == nil || c.Superclass == "" {
		return nil, false
	}
	return gc.ResolveClass(c.Superclass)
}

// MixinAnnotationTargets 返回 @Mixin 元数据中的目标引用，保持声明顺序
func (gc *GlobalContext) MixinAnnotationTargets(m *model.MixinDeclaration) []model.TargetReference {
	return m.Targets
}

// Symbols 按 QN 排序返回所有符号
func (gc *GlobalContext) Symbols() []*model.ClassSymbol {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()
	out := make([]*model.ClassSymbol, 0, len(gc.symbols))
	for _, s := range gc.symbols {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName < out[j].QualifiedName })
	return out
}

func (gc *GlobalContext) RLock() { gc.mutex.RLock() }

func (gc *GlobalContext) RUnlock() { gc.mutex.RUnlock() }
