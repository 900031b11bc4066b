package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ignoredDirs 构建产物与版本库目录
var ignoredDirs = map[string]bool{
	".git":    true,
	".gradle": true,
	".idea":   true,
	"build":   true,
	"out":     true,
}

// Trigger 一次完整的分析。ctx 被取消表示有更新的变更，结果应被丢弃
type Trigger func(ctx context.Context)

// Watcher 监听 .java 文件变更，防抖后触发重新分析，并取消仍在进行中的旧分析
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	trigger  Trigger
	root     string

	mu         sync.Mutex
	runCtx     context.Context
	timer      *time.Timer
	cancelPass context.CancelFunc
	lastPass   chan struct{} // 上一次分析结束时关闭
	closed     bool
	passes     sync.WaitGroup
}

func New(debounce time.Duration, trigger Trigger, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fsw:      fsw,
		logger:   logger,
		debounce: debounce,
		trigger:  trigger,
		runCtx:   context.Background(),
	}, nil
}

// Start 递归注册 root 下的所有目录 (忽略目录除外)
func (w *Watcher) Start(root string) error {
	w.root = root
	if err := w.addTree(root); err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}
	w.logger.Info("file watcher started", "root", root)
	return nil
}

// Run 事件循环，直到 ctx 结束。返回前会取消并等待所有分析协程
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	w.runCtx = ctx
	w.mu.Unlock()

	defer w.shutdown()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Kick 立即触发一次分析 (例如启动时的首次分析)
func (w *Watcher) Kick() {
	w.fire()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) && isDir(path) {
		if shouldIgnoreDir(filepath.Base(path)) {
			return
		}
		if err := w.addTree(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		// 目录中可能已经有文件
		w.schedule()
		return
	}

	if !strings.HasSuffix(path, ".java") || w.underIgnoredDir(path) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.logger.Debug("file event", "op", event.Op.String(), "file", path)
		w.schedule()
	}
}

// schedule 重置防抖计时器
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire 取消进行中的分析，等它退出后再在新的上下文中启动下一次，
// 被取消的分析不会与新分析交错输出
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.cancelPass != nil {
		w.cancelPass()
	}
	passCtx, cancel := context.WithCancel(w.runCtx)
	w.cancelPass = cancel
	prev, done := w.lastPass, make(chan struct{})
	w.lastPass = done
	w.passes.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.passes.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		if passCtx.Err() != nil {
			return
		}
		w.trigger(passCtx)
	}()
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	if w.cancelPass != nil {
		w.cancelPass()
	}
	w.mu.Unlock()

	w.passes.Wait()
	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("failed to close file watcher", "error", err)
	}
	w.logger.Info("file watcher stopped")
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 遍历途中被删除的目录直接跳过
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldIgnoreDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// underIgnoredDir 只检查 root 以下的路径段
func (w *Watcher) underIgnoredDir(path string) bool {
	rel, err := filepath.Rel(w.root, filepath.Dir(path))
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if shouldIgnoreDir(part) {
			return true
		}
	}
	return false
}

func shouldIgnoreDir(name string) bool {
	return ignoredDirs[name]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
