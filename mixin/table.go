package mixin

import "github.com/CodMac/mixin-lens/model"

// SymbolTable 检查器唯一依赖的只读符号表原语
type SymbolTable interface {
	ResolveClass(qn string) (*model.ClassSymbol, bool)
	DeclaredSuperclass(c *model.ClassSymbol) (*model.ClassSymbol, bool)
	MixinAnnotationTargets(m *model.MixinDeclaration) []model.TargetReference
}

// Snapshot 一次分析的符号表快照，Ready 之后不再变化
type Snapshot interface {
	SymbolTable
	Ready() bool
}
