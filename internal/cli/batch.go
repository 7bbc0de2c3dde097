package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"adjconst-generator/internal/metrics"
)

// SourcePattern matches the C# files below a directory argument.
const SourcePattern = "**/*.cs"

// Input is one file selected by ExpandPatterns.
type Input struct {
	// Path is the file as found on disk.
	Path string
	// Rel is Path relative to the directory its pattern started from.
	Rel string
}

// ExpandPatterns resolves file paths, directories and doublestar globs to
// a sorted, duplicate-free list of files. A directory selects every C# file
// below it.
func ExpandPatterns(patterns []string) ([]Input, error) {
	seen := make(map[string]bool)
	var inputs []Input

	add := func(path, base string) error {
		clean := filepath.Clean(path)
		if seen[clean] {
			return nil
		}

		rel, err := filepath.Rel(base, clean)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", clean, err)
		}

		seen[clean] = true
		inputs = append(inputs, Input{Path: clean, Rel: rel})

		return nil
	}

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
			}

			if !info.IsDir() {
				if err := add(pattern, filepath.Dir(pattern)); err != nil {
					return nil, err
				}

				continue
			}

			base := pattern
			pattern = filepath.Join(pattern, filepath.FromSlash(SourcePattern))

			if err := addMatches(pattern, base, add); err != nil {
				return nil, err
			}

			continue
		}

		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if err := addMatches(pattern, filepath.FromSlash(base), add); err != nil {
			return nil, err
		}
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Path < inputs[j].Path
	})

	return inputs, nil
}

func addMatches(pattern, base string, add func(path, base string) error) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("glob %q: %w", pattern, err)
	}

	for _, match := range matches {
		if err := add(match, base); err != nil {
			return err
		}
	}

	return nil
}

func containsGlob(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}

	return false
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// OutDir receives the rewritten files, mirroring their relative paths.
	// Empty rewrites the inputs in place.
	OutDir string
	// Stdout prints each input and its rewrite instead of writing files.
	Stdout io.Writer
	// Parallelism bounds the files processed at once; below one means one.
	Parallelism int
}

// Summary counts the outcomes of a batch run.
type Summary struct {
	Results []*FileResult
	Counts  map[string]int
}

// Failed returns the number of inputs that could not be rewritten.
func (s *Summary) Failed() int {
	return s.Counts[metrics.OutcomeFatal] + s.Counts[metrics.OutcomeIOError]
}

// Target returns where the rewrite of in is written.
func (o BatchOptions) Target(in Input) string {
	if o.OutDir == "" {
		return in.Path
	}

	return filepath.Join(o.OutDir, in.Rel)
}

// RunBatch rewrites every input. A failing file never stops the others;
// all failures are returned together.
func (r *Runner) RunBatch(ctx context.Context, inputs []Input, opts BatchOptions) (*Summary, error) {
	summary := &Summary{
		Results: make([]*FileResult, len(inputs)),
		Counts:  make(map[string]int),
	}

	if opts.Stdout != nil {
		var errs error
		for _, in := range inputs {
			if err := r.Print(ctx, in.Path, opts.Stdout); err != nil {
				errs = multierr.Append(errs, err)
			}
		}

		return summary, errs
	}

	var (
		mu   sync.Mutex
		errs error
		g    errgroup.Group
	)

	g.SetLimit(max(opts.Parallelism, 1))

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()

				return nil
			}

			res, err := r.RewriteFile(ctx, in.Path, opts.Target(in))

			mu.Lock()
			defer mu.Unlock()

			summary.Results[i] = res
			summary.Counts[res.Outcome]++
			errs = multierr.Append(errs, err)

			return nil
		})
	}

	_ = g.Wait()

	return summary, errs
}
