package models

import (
	"time"

	"gorm.io/datatypes"
)

// Run represents one rule application pass over a file set
type Run struct {
	ID string `gorm:"primaryKey;type:varchar(20)"`

	// What was executed
	RuleSet       string `gorm:"type:varchar(255)"` // hint unit id or path
	SourceVersion string `gorm:"type:varchar(10)"`
	DryRun        bool   `gorm:"default:false"`

	// Statistics
	FilesScanned int `gorm:"default:0"`
	FilesChanged int `gorm:"default:0"`
	MatchCount   int `gorm:"default:0"`

	StartedAt  time.Time `gorm:"autoCreateTime"`
	FinishedAt *time.Time

	// Relationships
	Changes []Change `gorm:"foreignKey:RunID"`
}

// Change is one rewrite applied to a file within a run
type Change struct {
	ID    string `gorm:"primaryKey;type:varchar(20)"`
	RunID string `gorm:"type:varchar(20);index"`

	// Where
	Path   string `gorm:"type:varchar(512);not null"`
	Line   int    `gorm:"default:0"`
	Offset int    `gorm:"default:0"`
	Length int    `gorm:"default:0"`

	// What
	PatternText string         `gorm:"type:text"` // source pattern as written
	Description string         `gorm:"type:varchar(255)"`
	Replacement string         `gorm:"type:text"`
	Imports     datatypes.JSON `gorm:"type:jsonb"` // import directive applied

	// Checksums for validation
	BaseDigest  string `gorm:"type:varchar(64)"` // SHA256 of original file
	AfterDigest string `gorm:"type:varchar(64)"` // SHA256 of rewritten file

	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// TableName customizations for cleaner names
func (Run) TableName() string    { return "runs" }
func (Change) TableName() string { return "changes" }
