package apply

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scope bounds a file discovery run.
type Scope struct {
	Path     string
	Include  []string // glob patterns; empty includes everything
	Exclude  []string
	MaxDepth int // 0 means unlimited
	MaxFiles int // 0 means unlimited
}

// Walker discovers target files under a directory tree.
type Walker struct{}

// NewWalker creates a file walker.
func NewWalker() *Walker { return &Walker{} }

// Files returns every regular file under scope.Path matching the include
// patterns and not matching the exclude patterns, sorted for deterministic
// processing order.
func (w *Walker) Files(ctx context.Context, scope Scope) ([]string, error) {
	if scope.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	info, err := os.Stat(scope.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot access path %s: %w", scope.Path, err)
	}
	if !info.IsDir() {
		return []string{scope.Path}, nil
	}

	var files []string
	if err := w.scan(ctx, scope.Path, scope, 0, &files); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (w *Walker) scan(ctx context.Context, dir string, scope Scope, depth int, files *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if scope.MaxDepth > 0 && depth > scope.MaxDepth {
		return nil
	}
	if scope.MaxFiles > 0 && len(*files) >= scope.MaxFiles {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // skip directories we cannot read
	}
	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())
		if isMatched(fullPath, scope.Exclude) {
			continue
		}
		if entry.IsDir() {
			if err := w.scan(ctx, fullPath, scope, depth+1, files); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if len(scope.Include) == 0 || isMatched(fullPath, scope.Include) {
			*files = append(*files, fullPath)
			if scope.MaxFiles > 0 && len(*files) >= scope.MaxFiles {
				return nil
			}
		}
	}
	return nil
}

// isMatched performs glob matching with ** support, falling back to the
// basename for patterns without path separators.
func isMatched(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.PathMatch(pattern, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}
