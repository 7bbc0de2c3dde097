package plan

import (
	"strings"

	"adjconst-generator/internal/analyze"
)

// DefaultCollectionTypes are the collection types recognized without
// configuration.
var DefaultCollectionTypes = []string{"FrozenArray`1", "PatchableList`1"}

// TypeLookup finds type definitions by qualified metadata name.
type TypeLookup interface {
	LookupType(qualified string) (*analyze.TypeInfo, bool)
}

type registryEntry struct {
	id   analyze.TypeID
	info *analyze.TypeInfo
}

// Registry is the set of types flagged as collections. It is built once and
// never mutated; Bind returns a copy.
type Registry struct {
	entries []registryEntry
}

// NewRegistry creates a registry from qualified type names, written either
// in metadata form ("Game.PatchableList`1") or with type parameters
// ("Game.PatchableList<T>"). Blank names are ignored.
func NewRegistry(names ...string) *Registry {
	r := &Registry{}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}

		r.entries = append(r.entries, registryEntry{id: analyze.ParseTypeID(name)})
	}

	return r
}

// Names returns the qualified metadata names of all entries.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.id.String())
	}

	return names
}

// Bind returns a registry whose entries carry the definitions found in
// types, so that matching can compare identities first.
func (r *Registry) Bind(types TypeLookup) *Registry {
	bound := &Registry{entries: make([]registryEntry, len(r.entries))}

	for i, e := range r.entries {
		bound.entries[i] = e
		if info, ok := types.LookupType(e.id.String()); ok {
			bound.entries[i].info = info
		}
	}

	return bound
}

// Match reports whether t, or its generic definition, is a registered
// collection type. Identity is checked first, then the qualified metadata
// name. Entries written without a namespace match on the metadata name alone.
func (r *Registry) Match(t *analyze.TypeInfo) bool {
	if t.IsError() {
		return false
	}

	def := t.OriginalDefinition()

	for _, e := range r.entries {
		if e.info != nil && (e.info == def || e.info == t) {
			return true
		}
	}

	for _, e := range r.entries {
		if e.id == def.ID {
			return true
		}

		if e.id.Namespace == "" && e.id.Name == def.ID.Name {
			return true
		}
	}

	return false
}
