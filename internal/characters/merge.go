package characters

import (
	"fmt"

	"github.com/hallowgraph/backend/internal/sources"
)

// Merge reconciles the two record sequences into the canonical entity
// set. The primary source seeds every entity; supplemental records
// matching an existing display name (exact, case-sensitive) only fill
// fields the primary left empty, except the romance mention list, which a
// non-empty supplemental list replaces outright. Unmatched supplemental
// records become new entities. Records without a name are dropped.
//
// Canonical order is insertion order: primary records in response order,
// then new supplemental records in response order. Ids are ch0, ch1, ...
// over that order.
func Merge(primary, supplemental []sources.Record) []*Character {
	byName := make(map[string]*Character)
	var order []string

	for _, r := range primary {
		if r.Name == "" {
			continue
		}
		if _, exists := byName[r.Name]; !exists {
			order = append(order, r.Name)
		}
		byName[r.Name] = &Character{
			Name:     r.Name,
			House:    r.House,
			Species:  defaultSpecies(r.Species),
			Gender:   r.Gender,
			Ancestry: r.Ancestry,
			Wand:     r.Wand,
			Patronus: r.Patronus,
			Student:  r.Student,
			Staff:    r.Staff,
			Alive:    r.Alive,
			Image:    r.Image,
		}
	}

	for _, r := range supplemental {
		if r.Name == "" {
			continue
		}
		if target, ok := byName[r.Name]; ok {
			fillEmpty(&target.House, r.House)
			fillEmpty(&target.Species, r.Species)
			fillEmpty(&target.Gender, r.Gender)
			fillEmpty(&target.Image, r.Image)
			fillEmpty(&target.Patronus, r.Patronus)
			if len(r.Romances) > 0 {
				target.Romances = r.Romances
			}
			continue
		}
		order = append(order, r.Name)
		byName[r.Name] = &Character{
			Name:     r.Name,
			House:    r.House,
			Species:  defaultSpecies(r.Species),
			Gender:   r.Gender,
			Wand:     r.Wand,
			Patronus: r.Patronus,
			Alive:    r.Alive,
			Image:    r.Image,
			Romances: r.Romances,
		}
	}

	out := make([]*Character, 0, len(order))
	for i, name := range order {
		ch := byName[name]
		ch.ID = fmt.Sprintf("ch%d", i)
		out = append(out, ch)
	}
	return out
}

func defaultSpecies(s string) string {
	if s == "" {
		return "human"
	}
	return s
}

func fillEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
