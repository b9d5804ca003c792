package db

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/models"
)

// Store records apply runs and their per-file changes.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database handle.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// BeginRun opens a run record.
func (s *Store) BeginRun(ruleSet, sourceVersion string, dryRun bool) (*models.Run, error) {
	run := &models.Run{
		ID:            models.NewID("run"),
		RuleSet:       ruleSet,
		SourceVersion: sourceVersion,
		DryRun:        dryRun,
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run's statistics and end time.
func (s *Store) FinishRun(run *models.Run, scanned, changed, matches int) error {
	now := time.Now()
	run.FilesScanned = scanned
	run.FilesChanged = changed
	run.MatchCount = matches
	run.FinishedAt = &now
	if err := s.db.Save(run).Error; err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordChange persists one applied rewrite.
func (s *Store) RecordChange(runID, path string, res core.TransformationResult, baseDigest, afterDigest string) error {
	importsJSON, err := json.Marshal(res.Imports)
	if err != nil {
		return fmt.Errorf("encode imports: %w", err)
	}
	change := &models.Change{
		ID:          models.NewID("chg"),
		RunID:       runID,
		Path:        path,
		Line:        res.Line,
		Offset:      res.Match.Offset,
		Length:      res.Match.Length,
		PatternText: res.Rule.SourcePattern.Text,
		Description: res.Description,
		Replacement: res.Replacement,
		Imports:     importsJSON,
		BaseDigest:  baseDigest,
		AfterDigest: afterDigest,
	}
	if err := s.db.Create(change).Error; err != nil {
		return fmt.Errorf("create change: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs with their changes preloaded.
func (s *Store) RecentRuns(limit int) ([]models.Run, error) {
	var runs []models.Run
	err := s.db.Preload("Changes").
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

// ChangesFor returns every recorded change for a file path, newest first.
func (s *Store) ChangesFor(path string) ([]models.Change, error) {
	var changes []models.Change
	err := s.db.Where("path = ?", path).
		Order("applied_at DESC").
		Find(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("query changes: %w", err)
	}
	return changes, nil
}
