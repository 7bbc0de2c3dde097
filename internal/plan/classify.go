package plan

import (
	"adjconst-generator/internal/analyze"
)

// Classifier assigns emission categories to resolved types.
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a classifier around a collection registry. A nil
// registry recognizes no collections.
func NewClassifier(registry *Registry) *Classifier {
	if registry == nil {
		registry = NewRegistry()
	}

	return &Classifier{registry: registry}
}

// Registry returns the collection registry used by the classifier.
func (c *Classifier) Registry() *Registry {
	return c.registry
}

// Classify returns the category of t and whether its override slot is made
// nullable. Registry membership wins over everything else; unregistered
// generic value types are left unresolved.
func (c *Classifier) Classify(t *analyze.TypeInfo) (Category, bool) {
	switch {
	case c.registry.Match(t):
		return CategoryCollection, false
	case t.IsError():
		return CategoryUnresolved, false
	case t.IsGeneric():
		if t.IsReferenceType() {
			return CategoryReference, false
		}

		return CategoryUnresolved, false
	case t.IsValueType():
		return CategoryPlainValue, true
	case t.IsString():
		return CategoryStringLike, false
	default:
		return CategoryReference, false
	}
}
