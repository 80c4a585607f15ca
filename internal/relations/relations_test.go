package relations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hallowgraph/backend/internal/characters"
)

func TestLoadFactsDefault(t *testing.T) {
	facts, err := LoadFacts("")
	if err != nil {
		t.Fatalf("load embedded facts: %v", err)
	}
	if len(facts.Friends) != 6 {
		t.Fatalf("expected 6 canon friendships, got %d", len(facts.Friends))
	}
	if len(facts.Enemies) != 5 {
		t.Fatalf("expected 5 canon enmities, got %d", len(facts.Enemies))
	}
	if facts.Friends[0].A != "Harry Potter" || facts.Friends[0].B != "Ron Weasley" {
		t.Fatalf("unexpected first friendship: %+v", facts.Friends[0])
	}
}

func TestLoadFactsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.yaml")
	body := "friends:\n  - a: Fred Weasley\n    b: George Weasley\nenemies: []\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp facts: %v", err)
	}

	facts, err := LoadFacts(path)
	if err != nil {
		t.Fatalf("load facts file: %v", err)
	}
	if len(facts.Friends) != 1 || facts.Friends[0].B != "George Weasley" {
		t.Fatalf("unexpected facts: %+v", facts)
	}
	if len(facts.Enemies) != 0 {
		t.Fatalf("expected no enemies, got %d", len(facts.Enemies))
	}
}

func TestLoadFactsMissingFile(t *testing.T) {
	if _, err := LoadFacts(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPartnerMention(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Ginny Weasley (wife)", "Ginny Weasley"},
		{"Cho Chang", "Cho Chang"},
		{"  Fleur Delacour  (married)", "Fleur Delacour"},
		{"(unknown)", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := PartnerMention(c.in); got != c.want {
			t.Fatalf("PartnerMention(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveRomancesFirstMatchWins(t *testing.T) {
	chars := []*characters.Character{
		{ID: "ch0", Name: "James Potter I"},
		{ID: "ch1", Name: "James Potter II"},
		{ID: "ch2", Name: "Lily Evans", Romances: []string{"James Potter (husband)"}},
	}

	edges := ResolveRomances(chars)
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	// Both James Potter nodes contain the mention text; canonical order
	// picks the first.
	if edges[0].SourceID != "ch2" || edges[0].TargetID != "ch0" {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestResolveRomancesExactMatch(t *testing.T) {
	chars := []*characters.Character{
		{ID: "ch0", Name: "Harry Potter", Romances: []string{"Ginny Weasley (wife)"}},
		{ID: "ch1", Name: "Ginny Weasley"},
	}
	edges := ResolveRomances(chars)
	if len(edges) != 1 || edges[0].SourceID != "ch0" || edges[0].TargetID != "ch1" {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}

func TestResolveRomancesUnmatchedMentionIsNoop(t *testing.T) {
	chars := []*characters.Character{
		{ID: "ch0", Name: "Hagrid", Romances: []string{"Olympe Maxime"}},
	}
	if edges := ResolveRomances(chars); len(edges) != 0 {
		t.Fatalf("expected no edges, got %+v", edges)
	}
}
