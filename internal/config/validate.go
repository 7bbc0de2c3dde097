package config

import (
	"fmt"
	"strings"

	"adjconst-generator/internal/analyze"
	"adjconst-generator/internal/diagnostic"
	"adjconst-generator/internal/gen"
)

// Validate checks a configuration for values the rewriter cannot use.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError(diagnostic.CodeInvalidConfig, "config is nil", "", "")
		return res
	}

	seen := map[string]struct{}{}

	for i, name := range cfg.CollectionTypes {
		path := fmt.Sprintf("collection_types[%d]", i)
		if strings.TrimSpace(name) == "" {
			res.AddError(diagnostic.CodeInvalidConfig, "collection type name is empty", "", path)
			continue
		}

		id := analyze.ParseTypeID(name).String()
		if _, ok := seen[id]; ok {
			res.AddWarning(diagnostic.CodeInvalidConfig, fmt.Sprintf("duplicate collection type %q", name), "", path)
		}

		seen[id] = struct{}{}
	}

	for i, kt := range cfg.KnownTypes {
		path := fmt.Sprintf("known_types[%d]", i)
		if strings.TrimSpace(kt.Name) == "" {
			res.AddError(diagnostic.CodeInvalidConfig, "known type name is empty", "", path)
		}

		if _, err := analyze.ParseTypeKind(kt.Kind); err != nil {
			res.AddError(diagnostic.CodeInvalidConfig, err.Error(), "", path+".kind")
		}
	}

	if !isIdentifier(cfg.Adjustment.Suffix) {
		res.AddError(diagnostic.CodeInvalidConfig,
			fmt.Sprintf("suffix %q is not a valid identifier part", cfg.Adjustment.Suffix), "", "adjustment.suffix")
	}

	if !isIdentifier(cfg.Adjustment.Instance) {
		res.AddError(diagnostic.CodeInvalidConfig,
			fmt.Sprintf("instance %q is not a valid identifier", cfg.Adjustment.Instance), "", "adjustment.instance")
	}

	g := cfg.Guard
	if g.Open == g.Separator || g.Open == g.Close || g.Separator == g.Close {
		res.AddError(diagnostic.CodeInvalidConfig, "guard markers must be distinct", "", "guard")
	}

	if strings.TrimSpace(cfg.Indent) != "" {
		res.AddError(diagnostic.CodeInvalidConfig, "indent must contain only spaces or tabs", "", "indent")
	}

	if _, err := gen.ParseLineEnding(cfg.LineEnding); err != nil {
		res.AddError(diagnostic.CodeInvalidConfig, err.Error(), "", "line_ending")
	}

	if cfg.IO.Retries < 1 {
		res.AddError(diagnostic.CodeInvalidConfig, "retries must be positive", "", "io.retries")
	}

	if cfg.IO.RetryDelay < 0 || cfg.IO.Debounce < 0 {
		res.AddError(diagnostic.CodeInvalidConfig, "durations must not be negative", "", "io")
	}

	if cfg.IO.Parallelism < 1 {
		res.AddError(diagnostic.CodeInvalidConfig, "parallelism must be positive", "", "io.parallelism")
	}

	return res
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
