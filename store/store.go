package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CodMac/mixin-lens/model"
)

// Store 分析历史 (SQLite)
type Store struct {
	db *gorm.DB
}

// Open 打开数据库并执行迁移。dsn 为文件路径或 ":memory:"
func Open(dsn string, debug bool) (*Store, error) {
	// Ensure directory exists for file-based SQLite
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	config := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		// 内存库每个连接都是独立的数据库
		if dsn == ":memory:" {
			sqlDB.SetMaxOpenConns(1)
		}
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return &Store{db: db}, nil
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pass{}, &Finding{})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordPass 在一个事务内写入 Pass 及其全部诊断，返回 Pass ID
func (s *Store) RecordPass(ctx context.Context, root string, files, mixins int, diags []model.Diagnostic) (string, error) {
	pass := &Pass{
		ID:          uuid.NewString(),
		Root:        root,
		Files:       files,
		Mixins:      mixins,
		Diagnostics: len(diags),
	}
	for _, d := range diags {
		f, err := newFinding(pass.ID, d)
		if err != nil {
			return "", err
		}
		pass.Findings = append(pass.Findings, f)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(pass).Error
	})
	if err != nil {
		return "", fmt.Errorf("record pass: %w", err)
	}
	return pass.ID, nil
}

// RecentPasses 按时间倒序返回最近的 limit 次分析
func (s *Store) RecentPasses(ctx context.Context, limit int) ([]Pass, error) {
	var passes []Pass
	q := s.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&passes).Error; err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}
	return passes, nil
}

// Findings 某次分析的全部诊断，按位置排序
func (s *Store) Findings(ctx context.Context, passID string) ([]model.Diagnostic, error) {
	var rows []Finding
	err := s.db.WithContext(ctx).
		Where("pass_id = ?", passID).
		Order("file_path").Order("line").Order("col").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}

	out := make([]model.Diagnostic, 0, len(rows))
	for _, r := range rows {
		var d model.Diagnostic
		if err := json.Unmarshal(r.Payload, &d); err != nil {
			return nil, fmt.Errorf("decode finding %d: %w", r.ID, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func newFinding(passID string, d model.Diagnostic) (Finding, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return Finding{}, fmt.Errorf("encode diagnostic: %w", err)
	}
	f := Finding{
		PassID:     passID,
		Inspection: d.Inspection,
		Kind:       string(d.Kind),
		Message:    d.Message,
		Mixin:      d.Mixin,
		Target:     d.Target,
		Payload:    payload,
	}
	if d.Span != nil {
		f.FilePath = d.Span.FilePath
		f.Line = d.Span.StartLine
		f.Col = d.Span.StartColumn
	}
	return f, nil
}
