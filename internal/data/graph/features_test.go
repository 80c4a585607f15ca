package graph

import (
	"strings"
	"testing"
)

func TestFeatureNamesOrder(t *testing.T) {
	want := []string{
		"friend_g", "friend_s", "friend_r", "friend_h",
		"enemy_g", "enemy_s", "enemy_r", "enemy_h",
		"fam_g", "fam_s", "fam_r", "fam_h",
		"love_g", "love_s", "love_r", "love_h",
	}
	got := FeatureNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHouseCode(t *testing.T) {
	cases := []struct {
		house string
		want  int64
	}{
		{"Gryffindor", 0},
		{"Hufflepuff", 1},
		{"Ravenclaw", 2},
		{"Slytherin", 3},
		{"", -1},
		{"Durmstrang", -1},
	}
	for _, c := range cases {
		if got := HouseCode(c.house); got != c.want {
			t.Fatalf("HouseCode(%q) = %d, want %d", c.house, got, c.want)
		}
	}
}

func TestRelationFeatureQueryShape(t *testing.T) {
	q := relationFeatureQuery(`MATCH (p:Person) WHERE p.house IN $houses`)

	for _, rel := range []string{RelFriend, RelEnemy, RelSameFamily, RelRomantic} {
		if !strings.Contains(q, "[:"+rel+"]") {
			t.Fatalf("query missing %s traversal:\n%s", rel, q)
		}
	}
	for _, col := range FeatureNames() {
		if !strings.Contains(q, " AS "+col) {
			t.Fatalf("query missing column %s", col)
		}
	}
	// Later stages must carry earlier sums through their WITH.
	if !strings.Contains(q, "WITH p, friend_g") {
		t.Fatalf("friend columns not carried through:\n%s", q)
	}
	if !strings.HasSuffix(q, "love_h") {
		t.Fatalf("RETURN should end with the last column:\n%s", q)
	}
}
