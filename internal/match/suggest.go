package match

import "sort"

// DefaultMinScore is the similarity a known name needs to be suggested.
const DefaultMinScore = 0.6

// Suggestion is a known type name ranked against an unresolved one.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every known name against name and returns those reaching
// minScore, best first. Ties keep alphabetical order.
func Rank(name string, known []string, minScore float64) []Suggestion {
	target := NormalizeTypeName(name)
	if target == "" {
		return nil
	}

	var ranked []Suggestion

	for _, candidate := range known {
		score := Similarity(target, NormalizeTypeName(candidate))
		if score < minScore {
			continue
		}

		ranked = append(ranked, Suggestion{Name: candidate, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}

		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}

// Suggest returns at most limit known names similar to name. Exact matches
// are excluded since they would not have failed to resolve.
func Suggest(name string, known []string, limit int) []string {
	var names []string

	for _, s := range Rank(name, known, DefaultMinScore) {
		if len(names) == limit {
			break
		}

		if s.Name == name {
			continue
		}

		names = append(names, s.Name)
	}

	return names
}
