package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量覆盖前缀，例如 MIXINLENS_ANALYSIS_JOBS
const EnvPrefix = "MIXINLENS_"

type Config struct {
	Source struct {
		Root    string   `yaml:"root"`
		Include []string `yaml:"include"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"source"`
	Analysis struct {
		Jobs        int      `yaml:"jobs"`
		Level       int      `yaml:"level"` // 0: 原样输出; 1: 遵守 @SuppressWarnings
		Inspections []string `yaml:"inspections"`
	} `yaml:"analysis"`
	Mixin struct {
		Annotation         string `yaml:"annotation"`
		AccessorAnnotation string `yaml:"accessor_annotation"`
	} `yaml:"mixin"`
	Output struct {
		Format string `yaml:"format"` // text | jsonl | mermaid
		Dir    string `yaml:"dir"`
	} `yaml:"output"`
	Store struct {
		DSN string `yaml:"dsn"` // 为空时不记录历史
	} `yaml:"store"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Watch struct {
		DebounceMS int `yaml:"debounce_ms"`
	} `yaml:"watch"`
}

// Default 未配置时的默认值
func Default() *Config {
	var cfg Config
	cfg.Source.Root = "."
	cfg.Source.Include = []string{"**/*.java"}
	cfg.Analysis.Jobs = 4
	cfg.Analysis.Level = 1
	cfg.Mixin.Annotation = "org.spongepowered.asm.mixin.Mixin"
	cfg.Mixin.AccessorAnnotation = "org.spongepowered.asm.mixin.gen.Accessor"
	cfg.Output.Format = "text"
	cfg.Output.Dir = "."
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Watch.DebounceMS = 300
	return &cfg
}

// Load 依次应用: 默认值 -> .env -> YAML 文件 -> MIXINLENS_* 环境变量。
// path 为空或文件不存在时跳过 YAML。
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// 3. Override with Environment Variables if present
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = splitList(v)
		}
	}
	num := func(key string, dst *int) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("SOURCE_ROOT", &c.Source.Root)
	list("SOURCE_INCLUDE", &c.Source.Include)
	list("SOURCE_EXCLUDE", &c.Source.Exclude)
	list("ANALYSIS_INSPECTIONS", &c.Analysis.Inspections)
	str("MIXIN_ANNOTATION", &c.Mixin.Annotation)
	str("MIXIN_ACCESSOR_ANNOTATION", &c.Mixin.AccessorAnnotation)
	str("OUTPUT_FORMAT", &c.Output.Format)
	str("OUTPUT_DIR", &c.Output.Dir)
	str("STORE_DSN", &c.Store.DSN)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	for key, dst := range map[string]*int{
		"ANALYSIS_JOBS":     &c.Analysis.Jobs,
		"ANALYSIS_LEVEL":    &c.Analysis.Level,
		"WATCH_DEBOUNCE_MS": &c.Watch.DebounceMS,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if c.Analysis.Jobs <= 0 {
		return fmt.Errorf("analysis.jobs must be positive, got %d", c.Analysis.Jobs)
	}
	if c.Analysis.Level < 0 || c.Analysis.Level > 1 {
		return fmt.Errorf("analysis.level must be 0 or 1, got %d", c.Analysis.Level)
	}
	switch c.Output.Format {
	case "text", "jsonl", "mermaid":
	default:
		return fmt.Errorf("output.format must be text, jsonl or mermaid, got %q", c.Output.Format)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
