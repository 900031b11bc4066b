package mixin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

func TestAnalyzer_RequiresReadySnapshot(t *testing.T) {
	f := entityWorld()
	f.ready = false

	diags, err := NewAnalyzer(nil, 2, nil, nil).Run(context.Background(), f, nil)
	assert.ErrorIs(t, err, ErrSnapshotNotReady)
	assert.Nil(t, diags)
}

func TestAnalyzer_SortedOutput(t *testing.T) {
	f := entityWorld()
	var mixins []*model.MixinDeclaration
	for i := 9; i >= 0; i-- {
		m := f.mixinOf(fmt.Sprintf("test.M%d", i), "test.DemonWav", "test.DemonWav")
		m.SuperclassSpan = &model.Location{FilePath: fmt.Sprintf("test/M%d.java", i), StartLine: 3, StartColumn: 20}
		mixins = append(mixins, m)
	}
	// 同一文件内不同行
	extra := f.mixinOf("test.M0b", "test.Minecrell", "test.DemonWav")
	extra.SuperclassSpan = &model.Location{FilePath: "test/M0.java", StartLine: 1, StartColumn: 5}
	mixins = append(mixins, extra)

	diags, err := NewAnalyzer(nil, 4, nil, nil).Run(context.Background(), f, mixins)
	require.NoError(t, err)
	require.Len(t, diags, 11)

	assert.Equal(t, "test/M0.java", diags[0].Span.FilePath)
	assert.Equal(t, 1, diags[0].Span.StartLine)
	assert.Equal(t, model.NotInHierarchy, diags[0].Kind)
	assert.Equal(t, 3, diags[1].Span.StartLine)
	assert.Equal(t, "test/M9.java", diags[10].Span.FilePath)
	for _, d := range diags[1:] {
		assert.Equal(t, model.SelfExtension, d.Kind)
	}
}

func TestAnalyzer_CancelledPassDiscardsResults(t *testing.T) {
	f := entityWorld()
	var mixins []*model.MixinDeclaration
	for i := 0; i < 50; i++ {
		mixins = append(mixins, f.mixinOf(fmt.Sprintf("test.M%d", i), "test.DemonWav", "test.DemonWav"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	diags, err := NewAnalyzer(nil, 4, nil, nil).Run(ctx, f, mixins)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, diags)
}

// cancellingInspection 在第一次被调用时取消整个 pass
type cancellingInspection struct {
	cancel context.CancelFunc
}

func (c cancellingInspection) ID() string { return "Cancelling" }

func (c cancellingInspection) Inspect(_ SymbolTable, m *model.MixinDeclaration) []model.Diagnostic {
	c.cancel()
	return []model.Diagnostic{{Inspection: "Cancelling", Mixin: m.QualifiedName()}}
}

func TestAnalyzer_CancelMidPass(t *testing.T) {
	f := entityWorld()
	var mixins []*model.MixinDeclaration
	for i := 0; i < 20; i++ {
		mixins = append(mixins, f.mixinOf(fmt.Sprintf("test.M%d", i), "", "test.DemonWav"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a := NewAnalyzer([]Inspection{cancellingInspection{cancel: cancel}}, 3, nil, nil)

	diags, err := a.Run(ctx, f, mixins)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, diags)
}

type suppressAll struct{ core.DefaultSuppressor }

func (suppressAll) IsSuppressed(model.Diagnostic, *model.MixinDeclaration) bool { return true }

func TestAnalyzer_Suppressor(t *testing.T) {
	f := entityWorld()
	m := f.mixinOf("test.M", "test.DemonWav", "test.DemonWav")

	diags, err := NewAnalyzer(nil, 1, &suppressAll{}, nil).Run(context.Background(), f, []*model.MixinDeclaration{m})
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	f := entityWorld()
	var mixins []*model.MixinDeclaration
	for i := 0; i < 30; i++ {
		mixins = append(mixins, f.mixinOf(fmt.Sprintf("test.M%02d", i), "test.Minecrell", "test.DemonWav"))
	}

	first, err := NewAnalyzer(nil, 1, nil, nil).Run(context.Background(), f, mixins)
	require.NoError(t, err)
	second, err := NewAnalyzer(nil, 8, nil, nil).Run(context.Background(), f, mixins)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectInspections(t *testing.T) {
	assert.Len(t, SelectInspections(nil), 2)
	only := SelectInspections([]string{"AccessorTarget"})
	require.Len(t, only, 1)
	assert.Equal(t, "AccessorTarget", only[0].ID())
}
