package mixin

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/model"
)

// ErrSnapshotNotReady 快照尚未完成绑定
var ErrSnapshotNotReady = errors.New("snapshot is not ready")

// Analyzer 对一个已封存的快照执行所有检查
type Analyzer struct {
	Inspections []Inspection
	Concurrency int
	Suppressor  core.Suppressor // 为空时不做抑制
	Logger      *slog.Logger
}

func NewAnalyzer(inspections []Inspection, concurrency int, suppressor core.Suppressor, logger *slog.Logger) *Analyzer {
	if concurrency <= 0 {
		concurrency = 4
	}
	if len(inspections) == 0 {
		inspections = DefaultInspections()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		Inspections: inspections,
		Concurrency: concurrency,
		Suppressor:  suppressor,
		Logger:      logger,
	}
}

// Run 检查 mixins 并按 文件/行/列 排序返回诊断。
// ctx 在任意 Mixin 边界被取消时返回 ctx.Err()，已产生的部分结果全部丢弃。
func (a *Analyzer) Run(ctx context.Context, snap Snapshot, mixins []*model.MixinDeclaration) ([]model.Diagnostic, error) {
	if snap == nil || !snap.Ready() {
		return nil, ErrSnapshotNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobs := make(chan *model.MixinDeclaration, len(mixins))
	for _, m := range mixins {
		jobs <- m
	}
	close(jobs)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []model.Diagnostic
	)
	for i := 0; i < a.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if ctx.Err() != nil {
					return
				}
				diags := a.inspect(snap, m)
				if len(diags) == 0 {
					continue
				}
				mu.Lock()
				results = append(results, diags...)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		a.Logger.Debug("analysis pass cancelled", "mixins", len(mixins))
		return nil, err
	}

	SortDiagnostics(results)
	a.Logger.Debug("analysis pass finished", "mixins", len(mixins), "diagnostics", len(results))
	return results, nil
}

func (a *Analyzer) inspect(table SymbolTable, m *model.MixinDeclaration) []model.Diagnostic {
	var out []model.Diagnostic
	for _, in := range a.Inspections {
		for _, d := range in.Inspect(table, m) {
			if a.Suppressor != nil && a.Suppressor.IsSuppressed(d, m) {
				a.Logger.Debug("diagnostic suppressed", "mixin", m.QualifiedName(), "inspection", d.Inspection)
				continue
			}
			out = append(out, d)
		}
	}
	return out
}

// SortDiagnostics 按 文件、行、列 排序，位置相同时按检查 ID 与消息稳定排序
func SortDiagnostics(diags []model.Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Span, diags[j].Span
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil:
			if a.FilePath != b.FilePath {
				return a.FilePath < b.FilePath
			}
			if a.StartLine != b.StartLine {
				return a.StartLine < b.StartLine
			}
			if a.StartColumn != b.StartColumn {
				return a.StartColumn < b.StartColumn
			}
		}
		if diags[i].Inspection != diags[j].Inspection {
			return diags[i].Inspection < diags[j].Inspection
		}
		return diags[i].Message < diags[j].Message
	})
}
