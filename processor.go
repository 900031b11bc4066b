package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/mixin"
	"github.com/CodMac/mixin-lens/model"
	"github.com/CodMac/mixin-lens/parser"
)

const maxCachedFiles = 4096

type FileProcessor struct {
	Language    core.Language
	Concurrency int
	FilterLevel core.FilterLevel
	Options     core.Options
	Inspections []mixin.Inspection
	Logger      *slog.Logger

	// 采集结果缓存，key 为相对路径，内容哈希不变时跳过解析 (watch 模式下跨 pass 复用)
	cache *lru.Cache[string, cachedFile]
}

type cachedFile struct {
	digest [sha256.Size]byte
	fCtx   *core.FileContext
}

// PassResult 一次分析的全部产物
type PassResult struct {
	Context     *core.GlobalContext
	Relations   []*model.DependencyRelation
	Diagnostics []model.Diagnostic
	Files       int
	Mixins      int
	Skipped     []string // 读取或解析失败的文件
}

func NewFileProcessor(lang core.Language, concurrency int, filterLevel core.FilterLevel, logger *slog.Logger) *FileProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.NewWithEvict(maxCachedFiles, func(key string, _ cachedFile) {
		logger.Debug("LRU evicting file", "path", key)
	})
	if err != nil {
		// This should never happen with a positive size
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	return &FileProcessor{
		Language:    lang,
		Concurrency: concurrency,
		FilterLevel: filterLevel,
		Logger:      logger,
		cache:       cache,
	}
}

func (fp *FileProcessor) ProcessFiles(ctx context.Context, rootPath string, filePaths []string) (*PassResult, error) {
	resolver, err := core.GetSymbolResolver(fp.Language)
	if err != nil {
		return nil, err
	}
	cot, err := core.GetCollector(fp.Language)
	if err != nil {
		return nil, err
	}
	binder, err := core.GetBinder(fp.Language)
	if err != nil {
		return nil, err
	}
	linker, err := core.GetLinker(fp.Language)
	if err != nil {
		return nil, err
	}

	globalContext := core.NewGlobalContext(resolver)
	globalContext.Options = fp.Options
	absRoot, _ := filepath.Abs(rootPath)

	// --- 阶段 1: 并行收集 (Collector) ---
	var (
		mu      sync.Mutex
		fCtxs   []*core.FileContext
		skipped []string
	)
	err = fp.runParallel(ctx, filePaths, func(path string, p parser.Parser) error {
		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		fCtx, err := fp.collectFile(p, cot, path, relPath)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			// 单个文件失败不影响整体分析
			fp.Logger.Warn("skipping file", "path", relPath, "error", err)
			skipped = append(skipped, relPath)
			return nil
		}
		fCtxs = append(fCtxs, fCtx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 按路径顺序注册，重复 QN 的归属与并发调度无关
	sort.Slice(fCtxs, func(i, j int) bool { return fCtxs[i].FilePath < fCtxs[j].FilePath })
	for _, fCtx := range fCtxs {
		globalContext.RegisterFileContext(fCtx)
	}

	// --- 阶段 2: 符号绑定 (Binder)，结束后快照被封存 ---
	binder.BindSymbols(globalContext)

	// --- 阶段 3: 拓扑链接 (Linker) ---
	rels := linker.LinkHierarchy(globalContext)

	// --- 阶段 4: 并行检查，并按 @SuppressWarnings 过滤 ---
	suppressor := core.NewSuppressor(fp.Language, fp.FilterLevel)
	mixins := globalContext.Mixins()
	analyzer := mixin.NewAnalyzer(fp.Inspections, fp.Concurrency, suppressor, fp.Logger)
	diags, err := analyzer.Run(ctx, globalContext, mixins)
	if err != nil {
		return nil, err
	}

	sort.Strings(skipped)
	fp.Logger.Info("analysis pass finished",
		"files", len(fCtxs), "skipped", len(skipped), "mixins", len(mixins), "diagnostics", len(diags))
	return &PassResult{
		Context:     globalContext,
		Relations:   rels,
		Diagnostics: diags,
		Files:       len(fCtxs),
		Mixins:      len(mixins),
		Skipped:     skipped,
	}, nil
}

// collectFile 读取文件，命中缓存时直接复制缓存的采集结果
func (fp *FileProcessor) collectFile(p parser.Parser, cot core.Collector, path, relPath string) (*core.FileContext, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relPath, err)
	}
	digest := sha256.Sum256(source)
	if hit, ok := fp.cache.Get(relPath); ok && hit.digest == digest {
		return hit.fCtx.Clone(), nil
	}

	tree, err := p.ParseBytes(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", relPath, err)
	}
	defer tree.Close()

	fCtx, err := cot.CollectDefinitions(tree.RootNode(), relPath, &source)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", relPath, err)
	}
	fp.cache.Add(relPath, cachedFile{digest: digest, fCtx: fCtx.Clone()})
	return fCtx, nil
}

// runParallel 内部并发调度器，ctx 取消后不再领取新文件
func (fp *FileProcessor) runParallel(ctx context.Context, paths []string, task func(string, parser.Parser) error) error {
	pathChan := make(chan string, len(paths))
	for _, p := range paths {
		pathChan <- p
	}
	close(pathChan)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for i := 0; i < fp.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := parser.NewParser(fp.Language)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			defer p.Close()

			for path := range pathChan {
				if ctx.Err() != nil {
					return
				}
				if err := task(path, p); err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
