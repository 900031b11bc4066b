package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodMac/mixin-lens/config"
	"github.com/CodMac/mixin-lens/core"
	"github.com/CodMac/mixin-lens/logging"
	"github.com/CodMac/mixin-lens/mixin"
	"github.com/CodMac/mixin-lens/output"
	"github.com/CodMac/mixin-lens/store"
	"github.com/CodMac/mixin-lens/watcher"
	_ "github.com/CodMac/mixin-lens/x/java"
)

const (
	MaxMermaidNodes = 200
	MaxMermaidEdges = 400
)

var (
	rootCmd = &cobra.Command{
		Use:           "mixin-lens",
		Short:         "Mixin 父类层级静态检查器",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
	flagValues = &flagOverrides{}
)

// flagOverrides 命令行参数，只有显式设置的才覆盖配置文件
type flagOverrides struct {
	include     []string
	exclude     []string
	jobs        int
	level       int
	format      string
	outDir      string
	inspections []string
	dsn         string
	logLevel    string
	logFormat   string
	debounceMS  int
	limit       int
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError("执行失败", err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "mixinlens.yaml", "配置文件路径 (YAML)")
	pf.StringVar(&flagValues.dsn, "store", "", "历史记录数据库 (SQLite)，为空时不记录")
	pf.StringVar(&flagValues.logLevel, "log-level", "", "日志等级: debug, info, warn, error")
	pf.StringVar(&flagValues.logFormat, "log-format", "", "日志格式: text, json")

	for _, cmd := range []*cobra.Command{checkCmd, watchCmd} {
		f := cmd.Flags()
		f.StringSliceVar(&flagValues.include, "include", nil, "包含的文件模式 (doublestar)")
		f.StringSliceVar(&flagValues.exclude, "exclude", nil, "排除的文件模式 (doublestar)")
		f.IntVarP(&flagValues.jobs, "jobs", "j", 0, "并发数")
		f.IntVar(&flagValues.level, "level", 1, "过滤等级: 0(Raw), 1(遵守 @SuppressWarnings)")
		f.StringVar(&flagValues.format, "format", "", "输出格式: text, jsonl, mermaid")
		f.StringVar(&flagValues.outDir, "out-dir", "", "jsonl / mermaid 的输出目录")
		f.StringSliceVar(&flagValues.inspections, "inspections", nil, "启用的检查: MixinSuperClass, AccessorTarget")
	}
	watchCmd.Flags().IntVar(&flagValues.debounceMS, "debounce-ms", 0, "文件变更防抖间隔 (毫秒)")
	historyCmd.Flags().IntVar(&flagValues.limit, "limit", 10, "列出最近的分析次数")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "分析一次并输出诊断",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		proc := newProcessor(cfg, logger)
		_, err = runPass(ctx, cfg, proc, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "监听源码变更并持续分析",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		proc := newProcessor(cfg, logger)
		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		trigger := func(passCtx context.Context) {
			_, err := runPass(passCtx, cfg, proc, logger, stdout, stderr)
			switch {
			case err == nil:
			case passCtx.Err() != nil:
				logger.Debug("stale pass discarded")
			default:
				logger.Error("analysis pass failed", "error", err)
			}
		}

		w, err := watcher.New(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, trigger, logger)
		if err != nil {
			return err
		}
		if err := w.Start(cfg.Source.Root); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "👀 正在监听: %s (Ctrl+C 退出)\n", cfg.Source.Root)
		w.Kick()
		return w.Run(ctx)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [pass-id]",
	Short: "查看历史分析记录",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		if cfg.Store.DSN == "" {
			return fmt.Errorf("未配置历史数据库 (--store 或 store.dsn)")
		}
		st, err := store.Open(cfg.Store.DSN, false)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			diags, err := st.Findings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.WriteText(out, diags)
		}

		passes, err := st.RecentPasses(cmd.Context(), flagValues.limit)
		if err != nil {
			return err
		}
		for _, p := range passes {
			fmt.Fprintf(out, "%s  %s  files=%d mixins=%d diagnostics=%d  %s\n",
				p.ID, p.CreatedAt.Format(time.RFC3339), p.Files, p.Mixins, p.Diagnostics, p.Root)
		}
		return nil
	},
}

// loadConfig 配置文件 -> 环境变量 -> 命令行参数
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Source.Root = args[0]
	}
	if flags.Changed("include") {
		cfg.Source.Include = flagValues.include
	}
	if flags.Changed("exclude") {
		cfg.Source.Exclude = flagValues.exclude
	}
	if flags.Changed("jobs") {
		cfg.Analysis.Jobs = flagValues.jobs
	}
	if flags.Changed("level") {
		cfg.Analysis.Level = flagValues.level
	}
	if flags.Changed("format") {
		cfg.Output.Format = flagValues.format
	}
	if flags.Changed("out-dir") {
		cfg.Output.Dir = flagValues.outDir
	}
	if flags.Changed("inspections") {
		cfg.Analysis.Inspections = flagValues.inspections
	}
	if flags.Changed("store") {
		cfg.Store.DSN = flagValues.dsn
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagValues.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = flagValues.logFormat
	}
	if flags.Changed("debounce-ms") {
		cfg.Watch.DebounceMS = flagValues.debounceMS
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger(logging.LoggerConfig{
		Level:  logging.LogLevel(cfg.Log.Level),
		Format: logging.LogFormat(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}

func newProcessor(cfg *config.Config, logger *slog.Logger) *FileProcessor {
	proc := NewFileProcessor(core.LangJava, cfg.Analysis.Jobs, core.FilterLevel(cfg.Analysis.Level), logger)
	proc.Options = core.Options{
		MixinAnnotation:    cfg.Mixin.Annotation,
		AccessorAnnotation: cfg.Mixin.AccessorAnnotation,
	}
	proc.Inspections = mixin.SelectInspections(cfg.Analysis.Inspections)
	return proc
}

// runPass 扫描 -> 分析 -> 导出 -> 记录历史
func runPass(ctx context.Context, cfg *config.Config, proc *FileProcessor, logger *slog.Logger, stdout, stderr io.Writer) (*PassResult, error) {
	startTime := time.Now()
	root := cfg.Source.Root

	// 1. 扫描文件
	fmt.Fprintf(stderr, "[1/4] 🔍 正在扫描目录: %s\n", root)
	files, err := scanFiles(root, cfg.Source.Include, cfg.Source.Exclude, logger)
	if err != nil {
		return nil, fmt.Errorf("扫描文件失败: %w", err)
	}
	fmt.Fprintf(stderr, "    找到 %d 个候选文件\n", len(files))

	// 2. 执行核心分析过程
	fmt.Fprintf(stderr, "[2/4] ⚙️  正在分析 Mixin 层级 (Level: %d)...\n", cfg.Analysis.Level)
	res, err := proc.ProcessFiles(ctx, root, files)
	if err != nil {
		return nil, fmt.Errorf("分析执行失败: %w", err)
	}
	fmt.Fprintf(stderr, "    Mixin 类 %d 个，跳过文件 %d 个\n", res.Mixins, len(res.Skipped))

	// 被新的分析取代时不再输出，避免覆盖更新的结果
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. 执行导出逻辑
	fmt.Fprintf(stderr, "[3/4] 💾 正在输出结果...\n")
	if err := runExport(cfg, res, stdout, stderr); err != nil {
		return nil, fmt.Errorf("导出失败: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.Store.DSN != "" {
		if err := recordPass(ctx, cfg, res); err != nil {
			logger.Warn("failed to record pass", "error", err)
		}
	}

	fmt.Fprintf(stderr, "[4/4] ✨ 分析结束! 总耗时: %v\n", time.Since(startTime).Round(time.Millisecond))
	return res, nil
}

func runExport(cfg *config.Config, res *PassResult, stdout, stderr io.Writer) error {
	format, err := output.ParseOutType(cfg.Output.Format)
	if err != nil {
		return err
	}
	if format == output.Mermaid {
		nodes, edges := output.NewExporter(cfg.Output.Dir, format, true).GraphSize(res.Context, res.Relations)
		if nodes > MaxMermaidNodes || edges > MaxMermaidEdges {
			fmt.Fprintf(stderr, "    ⚠️  规模过大(%d 节点)，Mermaid 渲染可能失败，自动降级为 jsonl\n", nodes)
			format = output.JsonL
		}
	}
	if format != output.Text {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return err
		}
	}

	exporter := output.NewExporter(cfg.Output.Dir, format, format == output.Mermaid)
	written, err := exporter.Export(stdout, res.Context, res.Relations, res.Diagnostics)
	if err != nil {
		return err
	}
	for _, f := range written.Files {
		abs, _ := filepath.Abs(f)
		fmt.Fprintf(stderr, "    ✅ 已写入: %s\n", abs)
	}
	return nil
}

func recordPass(ctx context.Context, cfg *config.Config, res *PassResult) error {
	st, err := store.Open(cfg.Store.DSN, false)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.RecordPass(ctx, cfg.Source.Root, res.Files, res.Mixins, res.Diagnostics)
	return err
}

func exitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
