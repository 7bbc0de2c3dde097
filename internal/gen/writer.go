package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"adjconst-generator/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile represents a rewritten C# source file.
type GeneratedFile struct {
	// Path is where the file is written, absolute or relative to the output dir.
	Path string
	// Content is the assembled source text.
	Content []byte
}

// WriteFile writes one file, creating its directory, retrying transient
// failures according to policy.
func WriteFile(ctx context.Context, file GeneratedFile, policy common.RetryPolicy) error {
	err := common.Retry(ctx, policy, func() error {
		if err := os.MkdirAll(filepath.Dir(file.Path), dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		return os.WriteFile(file.Path, file.Content, filePerm)
	})
	if err != nil {
		return fmt.Errorf("writing file %s: %w", file.Path, err)
	}

	return nil
}
