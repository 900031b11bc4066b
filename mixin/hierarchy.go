package mixin

import (
	"errors"

	"github.com/CodMac/mixin-lens/model"
)

var (
	// ErrCycleDetected 父类链回到了已经访问过的类型
	ErrCycleDetected = errors.New("superclass cycle detected")
	// ErrIncompleteHierarchy 父类链离开了已知符号 (外部类型或无法绑定的 extends)
	ErrIncompleteHierarchy = errors.New("superclass chain is incomplete")
)

// Ancestors 从 c 的直接父类开始向上遍历，返回 [直接父类, ..., 根]，不含 c 自身。
// 出错时仍返回已走过的部分链。
func Ancestors(table SymbolTable, c *model.ClassSymbol) ([]*model.ClassSymbol, error) {
	if c == nil {
		return nil, nil
	}
	if c.Origin == model.OriginExternal {
		return nil, ErrIncompleteHierarchy
	}

	var chain []*model.ClassSymbol
	visited := map[string]struct{}{c.QualifiedName: {}}
	cur := c
	for {
		parent, ok := table.DeclaredSuperclass(cur)
		if !ok {
			// 写了 extends 却没有可用的父类符号
			if cur.SuperclassUnbound() || cur.Superclass != "" {
				return chain, ErrIncompleteHierarchy
			}
			return chain, nil
		}
		if _, seen := visited[parent.QualifiedName]; seen {
			return chain, ErrCycleDetected
		}
		visited[parent.QualifiedName] = struct{}{}
		chain = append(chain, parent)

		if parent.Origin == model.OriginExternal {
			return chain, ErrIncompleteHierarchy
		}
		cur = parent
	}
}

func containsClass(chain []*model.ClassSymbol, qn string) bool {
	for _, c := range chain {
		if c.QualifiedName == qn {
			return true
		}
	}
	return false
}
