package config

import (
	"fmt"

	"adjconst-generator/internal/analyze"
	"adjconst-generator/internal/common"
	"adjconst-generator/internal/gen"
	"adjconst-generator/internal/rewrite"
)

// RewriteOptions converts the configuration into rewriter options.
// Validate should have passed; invalid kinds and line endings are reported
// as errors here as well.
func (c *Config) RewriteOptions() (rewrite.Options, error) {
	lineEnding, err := gen.ParseLineEnding(c.LineEnding)
	if err != nil {
		return rewrite.Options{}, err
	}

	known := make([]analyze.KnownType, 0, len(c.KnownTypes))
	for _, kt := range c.KnownTypes {
		kind, err := analyze.ParseTypeKind(kt.Kind)
		if err != nil {
			return rewrite.Options{}, fmt.Errorf("known type %s: %w", kt.Name, err)
		}

		known = append(known, analyze.KnownType{Name: kt.Name, Kind: kind})
	}

	return rewrite.Options{
		Generator: gen.GeneratorConfig{
			AdjSuffix: c.Adjustment.Suffix,
			BaseType:  c.Adjustment.BaseType,
			Instance:  c.Adjustment.Instance,
			Guard: gen.Guard{
				Open:      c.Guard.Open,
				Separator: c.Guard.Separator,
				Close:     c.Guard.Close,
			},
			Indent:     c.Indent,
			LineEnding: lineEnding,
		},
		CollectionTypes: c.CollectionTypes,
		KnownTypes:      known,
	}, nil
}

// RetryPolicy returns the file I/O retry policy.
func (c *Config) RetryPolicy() common.RetryPolicy {
	return common.RetryPolicy{Attempts: c.IO.Retries, Delay: c.IO.RetryDelay}
}
