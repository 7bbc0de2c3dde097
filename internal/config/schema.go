package config

import "time"

// Config is the root of the configuration file.
type Config struct {
	// CollectionTypes are emitted with the default/override triad. When the
	// key is absent the built-in list is used; an empty list disables it.
	CollectionTypes []string `yaml:"collection_types"`
	// KnownTypes extend the built-in type table.
	KnownTypes []KnownTypeDef `yaml:"known_types,omitempty"`
	// Adjustment controls naming of the adjustment type.
	Adjustment AdjustmentDef `yaml:"adjustment"`
	// Guard markers around the original and generated sections.
	Guard GuardDef `yaml:"guard"`
	// Indent is one indentation level of generated code.
	Indent string `yaml:"indent"`
	// LineEnding is "lf" or "crlf".
	LineEnding string `yaml:"line_ending"`
	// IO controls the host's file handling.
	IO IODef `yaml:"io"`
}

// KnownTypeDef declares a type by qualified name and kind.
type KnownTypeDef struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// AdjustmentDef names the adjustment type and its base.
type AdjustmentDef struct {
	Suffix   string `yaml:"suffix"`
	BaseType string `yaml:"base_type"`
	Instance string `yaml:"instance"`
}

// GuardDef holds the guard markers.
type GuardDef struct {
	Open      string `yaml:"open"`
	Separator string `yaml:"separator"`
	Close     string `yaml:"close"`
}

// IODef controls reading, writing and watching files.
type IODef struct {
	Retries     int           `yaml:"retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	Parallelism int           `yaml:"parallelism"`
	Debounce    time.Duration `yaml:"debounce"`
}
