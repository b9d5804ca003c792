package apply

import (
	"fmt"
	"os"
	"time"
)

// WriteConfig controls atomic writing behavior.
type WriteConfig struct {
	UseFsync       bool   // Force fsync for durability
	TempSuffix     string // Suffix for temporary files
	BackupOriginal bool   // Create backup before writing
}

// DefaultWriteConfig provides sensible defaults.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{
		UseFsync:       false,
		TempSuffix:     ".hintfix.tmp",
		BackupOriginal: false,
	}
}

// AtomicWriter rewrites files through a temp-file-and-rename sequence so a
// crash mid-write never leaves a half-written source file behind.
type AtomicWriter struct {
	config WriteConfig
}

// NewAtomicWriter creates a new atomic writer.
func NewAtomicWriter(config WriteConfig) *AtomicWriter {
	if config.TempSuffix == "" {
		config.TempSuffix = ".hintfix.tmp"
	}
	return &AtomicWriter{config: config}
}

// WriteFile atomically replaces path with content, preserving the file's
// mode when it already exists.
func (aw *AtomicWriter) WriteFile(path string, content []byte) error {
	var fileMode os.FileMode = 0o644
	originalInfo, statErr := os.Stat(path)
	if statErr == nil {
		fileMode = originalInfo.Mode()
	}

	if aw.config.BackupOriginal && statErr == nil {
		if err := aw.createBackup(path); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	tempPath := path + aw.config.TempSuffix
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write content: %w", err)
	}

	if aw.config.UseFsync {
		if err := tempFile.Sync(); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return fmt.Errorf("failed to sync: %w", err)
		}
	}
	tempFile.Close()

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to atomic rename: %w", err)
	}
	return nil
}

// createBackup copies the original aside with a timestamp.
func (aw *AtomicWriter) createBackup(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	timestamp := time.Now().Format("20060102-150405")
	return os.WriteFile(fmt.Sprintf("%s.bak.%s", path, timestamp), content, 0o644)
}
