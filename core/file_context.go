package core

import (
	"sync"

	"github.com/CodMac/mixin-lens/model"
)

// ValueKind 注解元素值的种类
type ValueKind string

const (
	ValueClassLiteral ValueKind = "CLASS_LITERAL" // Foo.class
	ValueString       ValueKind = "STRING"        // "a.b.Foo$Bar"
	ValueOther        ValueKind = "OTHER"
)

// AnnotationValue 注解中的一个元素值，数组初始化器会被展开成多个值
type AnnotationValue struct {
	Kind     ValueKind       `json:"Kind"`
	Text     string          `json:"Text"` // 类字面量的类型文本 / 字符串内容 / 原始文本
	Location *model.Location `json:"Location,omitempty"`
}

// AnnotationEntry 一个注解使用点。未命名的参数统一记在 "value" 键下。
type AnnotationEntry struct {
	Name     string                       `json:"Name"`
	Values   map[string][]AnnotationValue `json:"Values,omitempty"`
	Location *model.Location              `json:"Location,omitempty"`
}

// SimpleName 注解名的最后一段
func (a *AnnotationEntry) SimpleName() string {
	return model.ShortName(a.Name)
}

type MethodEntry struct {
	Name        string             `json:"Name"`
	Annotations []*AnnotationEntry `json:"Annotations,omitempty"`
	Location    *model.Location    `json:"Location,omitempty"`
}

type DefinitionEntry struct {
	Element        *model.ClassSymbol
	ParentQN       string
	SuperclassSpan *model.Location // extends 之后类型引用的位置
	InterfacesRaw  []string
	TypeParams     []string
	Annotations    []*AnnotationEntry
	Methods        []*MethodEntry
}

type ImportEntry struct {
	RawImportPath string            `json:"RawImportPath"`
	Alias         string            `json:"Alias"`
	Kind          model.ElementKind `json:"Kind"`
	IsWildcard    bool              `json:"IsWildcard"`
	IsStatic      bool              `json:"IsStatic"`
	Location      *model.Location   `json:"Location,omitempty"`
}

// FileContext 单个文件的采集结果。只保存纯数据，不持有语法树。
type FileContext struct {
	FilePath     string
	PackageName  string
	Definitions  []*DefinitionEntry
	Imports      map[string][]*ImportEntry
	mutex        sync.RWMutex
	shortNameMap map[string][]*DefinitionEntry
	kindMap      map[model.ElementKind][]*DefinitionEntry
}

func NewFileContext(filePath string) *FileContext {
	return &FileContext{
		FilePath:     filePath,
		Definitions:  []*DefinitionEntry{},
		Imports:      make(map[string][]*ImportEntry),
		shortNameMap: make(map[string][]*DefinitionEntry),
		kindMap:      make(map[model.ElementKind][]*DefinitionEntry),
	}
}

func (fc *FileContext) AddDefinition(entry *DefinitionEntry) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	fc.Definitions = append(fc.Definitions, entry)
	fc.shortNameMap[entry.Element.Name] = append(fc.shortNameMap[entry.Element.Name], entry)
	fc.kindMap[entry.Element.Kind] = append(fc.kindMap[entry.Element.Kind], entry)
}

func (fc *FileContext) AddImport(alias string, imp *ImportEntry) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.Imports[alias] = append(fc.Imports[alias], imp)
}

func (fc *FileContext) FindByShortName(sn string) ([]*DefinitionEntry, bool) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	entries, ok := fc.shortNameMap[sn]
	return entries, ok
}

func (fc *FileContext) FindByElementKind(kind model.ElementKind) ([]*DefinitionEntry, bool) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	entries, ok := fc.kindMap[kind]
	return entries, ok
}

// WildcardImports 返回所有非静态的 "pkg.*" 导入 (不含 ".*")
func (fc *FileContext) WildcardImports() []string {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	var pkgs []string
	for _, imp := range fc.Imports["*"] {
		if imp.IsStatic {
			continue
		}
		pkgs = append(pkgs, trimWildcard(imp.RawImportPath))
	}
	return pkgs
}

func trimWildcard(path string) string {
	if len(path) >= 2 && path[len(path)-2:] == ".*" {
		return path[:len(path)-2]
	}
	return path
}

// Clone 深拷贝 ClassSymbol 与可变切片，缓存的采集结果在每次分析前复制一份，
// 绑定阶段的写入不会影响缓存或其他进行中的分析
func (fc *FileContext) Clone() *FileContext {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()

	out := NewFileContext(fc.FilePath)
	out.PackageName = fc.PackageName
	for alias, imps := range fc.Imports {
		out.Imports[alias] = append([]*ImportEntry(nil), imps...)
	}
	for _, entry := range fc.Definitions {
		elem := *entry.Element
		elem.Interfaces = append([]string(nil), entry.Element.Interfaces...)
		elem.Fields = append([]string(nil), entry.Element.Fields...)
		cp := *entry
		cp.Element = &elem
		out.AddDefinition(&cp)
	}
	return out
}
