package relations

import (
	"strings"

	"github.com/hallowgraph/backend/internal/characters"
)

// Edge is one inferred directed relationship between two entity ids.
type Edge struct {
	SourceID string
	TargetID string
}

// PartnerMention extracts the candidate partner name from a free-text
// romance mention: the text before the first parenthesis, trimmed.
// "Ginny Weasley (wife)" -> "Ginny Weasley".
func PartnerMention(raw string) string {
	if i := strings.Index(raw, "("); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// ResolveRomances turns each entity's romance mentions into edges. A
// mention links to the first entity in canonical order whose name equals
// or contains the candidate text. That tie-break is a heuristic inherited
// from the source data's free-text field; it is deliberately not smarter.
func ResolveRomances(chars []*characters.Character) []Edge {
	var out []Edge
	for _, ch := range chars {
		for _, mention := range ch.Romances {
			partner := PartnerMention(mention)
			if partner == "" {
				continue
			}
			for _, cand := range chars {
				if cand.Name == partner || strings.Contains(cand.Name, partner) {
					out = append(out, Edge{SourceID: ch.ID, TargetID: cand.ID})
					break
				}
			}
		}
	}
	return out
}
