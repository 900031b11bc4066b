package java

import (
	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

type Suppressor struct {
	core.DefaultSuppressor
}

func NewJavaSuppressor(level core.FilterLevel) *Suppressor {
	return &Suppressor{
		DefaultSuppressor: core.DefaultSuppressor{Level: level},
	}
}

// IsSuppressed LevelRaw 下全部保留；LevelBalanced 遵守 Mixin 类上的 @SuppressWarnings
func (s *Suppressor) IsSuppressed(d model.Diagnostic, m *model.MixinDeclaration) bool {
	if m == nil || s.Level == core.LevelRaw {
		return false
	}
	return m.IsSuppressed(d.Inspection)
}
