// File: pkg/filelist/collect.go
package filelist

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/coderforge/pdfjoin/pkg/ignore"
	"github.com/coderforge/pdfjoin/pkg/joiner"

	"go.uber.org/zap"
)

// CollectOptions controls how command-line arguments become list entries.
type CollectOptions struct {
	ExpandDirs bool     // Replace directory arguments with the PDF files they contain.
	Recursive  bool     // Descend into subdirectories while expanding.
	Exclude    []string // Ignore rules applied to expanded directories.
	Logger     *zap.Logger
}

// Collect builds a list from args in order. File arguments are kept as given,
// including ones that do not exist; the joiner reports those. With
// ExpandDirs, a directory argument is replaced by its PDF files in lexical
// order, filtered by Exclude and the directory's ignore file.
func Collect(args []string, opts CollectOptions) (*List, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	base := ignore.New(logger)
	base.AddLines(opts.Exclude...)

	l := &List{}
	for _, arg := range args {
		path := joiner.NormalizePath(arg)
		if !opts.ExpandDirs {
			l.Add(arg)
			continue
		}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			l.Add(arg)
			continue
		}

		files, err := expandDir(path, base, opts.Recursive, logger)
		if err != nil {
			return l, fmt.Errorf("failed to expand directory %s: %w", path, err)
		}
		added := l.AddAll(files...)
		logger.Debug("Expanded directory", zap.String("dir", path), zap.Int("found", len(files)), zap.Int("added", added))
	}
	return l, nil
}

// expandDir walks dir and returns the PDF files it contains in lexical order.
func expandDir(dir string, base *ignore.Matcher, recursive bool, logger *zap.Logger) ([]string, error) {
	gi := base.Clone()
	if err := gi.AddFile(filepath.Join(dir, ignore.FileName)); err != nil {
		logger.Warn("Failed to load ignore file", zap.String("dir", dir), zap.Error(err))
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			logger.Warn("Error accessing path during expansion", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == dir {
			return nil
		}

		relPath, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			relPath = path
		}

		if d.IsDir() {
			if !recursive || gi.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsPDF(path) {
			return nil
		}
		if gi.Match(relPath, false) {
			logger.Debug("Skipping ignored file", zap.String("path", path))
			return nil
		}
		if !d.Type().IsRegular() {
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}
