// Package inspect reports page counts for a list of merge inputs.
package inspect

import (
	"context"
	"runtime"

	"github.com/coderforge/pdfjoin/pkg/joiner"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counter returns the number of pages in the file at path.
type Counter func(path string) (int, error)

// Entry is the page count of one input.
type Entry struct {
	Path  string // Path as given
	Pages int    // Zero when Err is set
	Err   error
}

// PageCounts counts the pages of every path with at most workers concurrent
// readers. Entries are returned in input order. Failures are reported per
// entry; canceling ctx marks the remaining entries with ctx.Err().
func PageCounts(ctx context.Context, paths []string, workers int, count Counter, logger *zap.Logger) []Entry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}

	entries := make([]Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	logger.Debug("Counting pages", zap.Int("files", len(paths)), zap.Int("workers", workers))
	for i, p := range paths {
		g.Go(func() error {
			entries[i].Path = p
			if err := gctx.Err(); err != nil {
				entries[i].Err = err
				return nil
			}
			pages, err := count(joiner.NormalizePath(p))
			if err != nil {
				logger.Debug("Failed to count pages", zap.String("path", p), zap.Error(err))
				entries[i].Err = err
				return nil
			}
			entries[i].Pages = pages
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

// Total sums the pages of readable entries and reports how many were readable.
func Total(entries []Entry) (pages, readable int) {
	for _, e := range entries {
		if e.Err == nil {
			pages += e.Pages
			readable++
		}
	}
	return pages, readable
}
