package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"adjconst-generator/internal/common"
	"adjconst-generator/internal/diagnostic"
	"adjconst-generator/internal/gen"
	"adjconst-generator/internal/metrics"
	"adjconst-generator/internal/rewrite"
)

// FileResult is the outcome of rewriting one file.
type FileResult struct {
	// Path is the input file.
	Path string
	// Target is the file written, empty when nothing was written.
	Target string
	// Outcome is one of the metrics.Outcome* values.
	Outcome string
	// Content is the rewritten text, nil for a missing declaration unit.
	Content []byte
	// Result is the rewrite result, nil when reading or rewriting failed.
	Result *rewrite.Result
}

// Runner reads, rewrites and writes files.
type Runner struct {
	rewriter *rewrite.Rewriter
	policy   common.RetryPolicy
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewRunner creates a Runner. A nil logger discards logs and nil metrics
// record nothing.
func NewRunner(
	rewriter *rewrite.Rewriter,
	policy common.RetryPolicy,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		rewriter: rewriter,
		policy:   policy,
		logger:   logger,
		metrics:  m,
	}
}

// Rewriter returns the rewriter used by the runner.
func (r *Runner) Rewriter() *rewrite.Rewriter {
	return r.rewriter
}

// ReadFile reads path, retrying transient failures.
func (r *Runner) ReadFile(ctx context.Context, path string) ([]byte, error) {
	var data []byte

	err := common.Retry(ctx, r.policy, func() error {
		var err error
		data, err = os.ReadFile(path)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	return data, nil
}

// Rewrite reads and rewrites path without writing anything.
func (r *Runner) Rewrite(ctx context.Context, path string) (*rewrite.Result, []byte, error) {
	src, err := r.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	result, err := r.rewriter.RewriteSource(ctx, src)
	if err != nil {
		return nil, src, fmt.Errorf("rewriting %s: %w", path, err)
	}

	r.logDiagnostics(path, result.Diagnostics)

	return result, src, nil
}

// RewriteFile rewrites path into target, which may be path itself. An input
// without a declaration unit is never written. Targets whose content would
// not change are left untouched.
func (r *Runner) RewriteFile(ctx context.Context, path, target string) (*FileResult, error) {
	start := time.Now()
	res := &FileResult{Path: path}

	result, _, err := r.Rewrite(ctx, path)
	if err != nil {
		res.Outcome = metrics.OutcomeFatal
		if isIOError(err) {
			res.Outcome = metrics.OutcomeIOError
		}

		r.metrics.ObserveRewrite(res.Outcome, time.Since(start))
		r.logger.Error("rewrite failed", zap.String("file", path), zap.Error(err))

		return res, err
	}

	res.Result = result
	r.metrics.ObservePlan(result.Plan)

	if result.Empty() {
		res.Outcome = metrics.OutcomeMissingUnit
		r.metrics.ObserveRewrite(res.Outcome, time.Since(start))

		return res, nil
	}

	res.Content = []byte(result.Text)

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, res.Content) {
		res.Outcome = metrics.OutcomeUnchanged
		r.metrics.ObserveRewrite(res.Outcome, time.Since(start))
		r.logger.Debug("file unchanged", zap.String("file", target))

		return res, nil
	}

	if err := gen.WriteFile(ctx, gen.GeneratedFile{Path: target, Content: res.Content}, r.policy); err != nil {
		res.Outcome = metrics.OutcomeIOError
		r.metrics.ObserveRewrite(res.Outcome, time.Since(start))
		r.logger.Error("write failed", zap.String("file", target), zap.Error(err))

		return res, err
	}

	res.Target = target
	res.Outcome = metrics.OutcomeWritten
	r.metrics.ObserveRewrite(res.Outcome, time.Since(start))
	r.logger.Info("rewrote file",
		zap.String("file", path),
		zap.String("target", target),
		zap.Int("members", len(result.Records())),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// Print writes the input file and its rewrite to w without touching the
// file system. An input without a declaration unit prints an empty output.
func (r *Runner) Print(ctx context.Context, path string, w io.Writer) error {
	result, src, err := r.Rewrite(ctx, path)
	if src == nil {
		return err
	}

	if _, werr := fmt.Fprintf(w, "--- input ----\n%s\n", src); werr != nil {
		return werr
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "--- output ----\n%s\n", result.Text)

	return err
}

func (r *Runner) logDiagnostics(path string, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fields := []zap.Field{
			zap.String("file", path),
			zap.String("code", d.Code),
		}

		if d.Member != "" {
			fields = append(fields, zap.String("member", d.Member))
		}

		if d.Line > 0 {
			fields = append(fields, zap.Int("line", d.Line))
		}

		if len(d.Suggestions) > 0 {
			fields = append(fields, zap.Strings("suggestions", d.Suggestions))
		}

		switch d.Severity {
		case diagnostic.DiagnosticError:
			r.logger.Error(d.Message, fields...)
		case diagnostic.DiagnosticWarning:
			r.logger.Warn(d.Message, fields...)
		default:
			r.logger.Debug(d.Message, fields...)
		}
	}
}

func isIOError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) || errors.Is(err, fs.ErrNotExist)
}
