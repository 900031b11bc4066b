package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// scanFiles 按 doublestar 模式筛选 root 下的文件，模式匹配使用 "/" 分隔的相对路径
func scanFiles(root string, include, exclude []string, logger *slog.Logger) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("walk error", "path", path, "error", err)
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range exclude {
			if matched, _ := doublestar.Match(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}

		if len(include) > 0 {
			matched := false
			for _, pattern := range include {
				if m, _ := doublestar.Match(pattern, relPath); m {
					matched = true
					break
				}
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
