package store

import (
	"time"

	"gorm.io/datatypes"
)

// Pass 一次完整的分析过程
type Pass struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Root        string    `gorm:"type:text"`
	Files       int       `gorm:"not null;default:0"`
	Mixins      int       `gorm:"not null;default:0"`
	Diagnostics int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`

	Findings []Finding `gorm:"foreignKey:PassID;constraint:OnDelete:CASCADE"`
}

// Finding 一条诊断，Payload 保存完整的 Diagnostic JSON
type Finding struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	PassID     string `gorm:"type:varchar(36);index;not null"`
	Inspection string `gorm:"type:varchar(50);index"`
	Kind       string `gorm:"type:varchar(30)"`
	Message    string `gorm:"type:text"`
	Mixin      string `gorm:"type:varchar(255);index"`
	Target     string `gorm:"type:varchar(255)"`
	FilePath   string `gorm:"type:text"`
	Line       int
	Col        int
	Payload    datatypes.JSON `gorm:"type:jsonb"`
}
