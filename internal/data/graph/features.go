package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
)

// FeatureHouses is the closed house set, in feature-column order. The
// classifiers consume vectors positionally, so this order is a contract.
var FeatureHouses = []string{"Gryffindor", "Slytherin", "Ravenclaw", "Hufflepuff"}

// featureGroups are the relationship families counted per house, in
// column-group order: friends, enemies, family, romances.
var featureGroups = []struct {
	prefix string
	rel    string
	alias  string
}{
	{"friend", RelFriend, "f"},
	{"enemy", RelEnemy, "e"},
	{"fam", RelSameFamily, "fam"},
	{"love", RelRomantic, "r"},
}

// FeatureNames returns the 16 column names in vector order:
// friend_g, friend_s, friend_r, friend_h, enemy_*, fam_*, love_*.
func FeatureNames() []string {
	out := make([]string, 0, len(featureGroups)*len(FeatureHouses))
	for _, g := range featureGroups {
		for _, h := range FeatureHouses {
			out = append(out, g.prefix+"_"+houseSuffix(h))
		}
	}
	return out
}

func houseSuffix(house string) string {
	return strings.ToLower(house[:1])
}

// HouseCode label-encodes a house value alphabetically over the closed
// set (Gryffindor 0, Hufflepuff 1, Ravenclaw 2, Slytherin 3); values
// outside the set encode as -1.
func HouseCode(house string) int64 {
	switch house {
	case "Gryffindor":
		return 0
	case "Hufflepuff":
		return 1
	case "Ravenclaw":
		return 2
	case "Slytherin":
		return 3
	default:
		return -1
	}
}

// RelationFeatures is one person's 16-count relationship vector.
type RelationFeatures struct {
	Name   string  `json:"name"`
	House  string  `json:"house"`
	Vector []int64 `json:"vector"`
}

// SurvivalFeatures is the narrow variant consumed by the survival
// classifier: raw relation counts plus the encoded house.
type SurvivalFeatures struct {
	Name      string `json:"name"`
	House     string `json:"house"`
	HouseCode int64  `json:"houseCode"`
	Alive     bool   `json:"alive"`
	Friends   int64  `json:"friends"`
	Enemies   int64  `json:"enemies"`
	Family    int64  `json:"family"`
}

// relationFeatureQuery chains one OPTIONAL MATCH per relationship family
// and a per-house conditional sum, carrying earlier columns through each
// WITH. The anchor selects the person set.
func relationFeatureQuery(anchor string) string {
	var b strings.Builder
	b.WriteString(anchor)
	b.WriteString("\n")
	var carried []string
	for _, g := range featureGroups {
		fmt.Fprintf(&b, "OPTIONAL MATCH (p)-[:%s]-(%s:Person)\n", g.rel, g.alias)
		b.WriteString("WITH p")
		for _, c := range carried {
			b.WriteString(", " + c)
		}
		for _, h := range FeatureHouses {
			col := g.prefix + "_" + houseSuffix(h)
			fmt.Fprintf(&b, ",\n     sum(CASE WHEN %s.house = '%s' THEN 1 ELSE 0 END) AS %s", g.alias, h, col)
			carried = append(carried, col)
		}
		b.WriteString("\n")
	}
	b.WriteString("RETURN p.name AS name, p.house AS house")
	for _, c := range carried {
		b.WriteString(", " + c)
	}
	return b.String()
}

func recordToRelationFeatures(rec *neo4j.Record) RelationFeatures {
	names := FeatureNames()
	vec := make([]int64, 0, len(names))
	for _, col := range names {
		vec = append(vec, int64Val(rec, col))
	}
	return RelationFeatures{
		Name:   stringVal(rec, "name"),
		House:  stringVal(rec, "house"),
		Vector: vec,
	}
}

// PersonRelationFeatures computes the 16-vector for one person inside
// the closed house set. A name (or house) miss returns nil, not an error.
func PersonRelationFeatures(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, name string) (*RelationFeatures, error) {
	q := relationFeatureQuery(`MATCH (p:Person {name: $name})
WHERE p.house IN $houses`)
	records, err := readRows(ctx, client, q, map[string]any{"name": name, "houses": FeatureHouses})
	if err != nil {
		return nil, fmt.Errorf("graph: person relation features: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	f := recordToRelationFeatures(records[0])
	return &f, nil
}

// AllRelationFeatures computes the vector for every person inside the
// closed house set. This is the export the classifier training reads.
func AllRelationFeatures(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) ([]RelationFeatures, error) {
	q := relationFeatureQuery(`MATCH (p:Person)
WHERE p.house IN $houses`)
	records, err := readRows(ctx, client, q, map[string]any{"houses": FeatureHouses})
	if err != nil {
		return nil, fmt.Errorf("graph: all relation features: %w", err)
	}
	out := make([]RelationFeatures, 0, len(records))
	for _, rec := range records {
		out = append(out, recordToRelationFeatures(rec))
	}
	return out, nil
}

// PersonSurvivalFeatures computes the narrow survival feature set for
// one person inside the closed house set.
func PersonSurvivalFeatures(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, name string) (*SurvivalFeatures, error) {
	records, err := readRows(ctx, client, `
MATCH (p:Person {name: $name})
WHERE p.house IN $houses
OPTIONAL MATCH (p)-[:FRIEND_OF]-(f:Person)
WITH p, count(f) AS friends_count
OPTIONAL MATCH (p)-[:ENEMY_OF]-(e:Person)
WITH p, friends_count, count(e) AS enemy_count
OPTIONAL MATCH (p)-[:SAME_FAMILY]-(fam:Person)
WITH p, friends_count, enemy_count, count(fam) AS fam_count
RETURN p.name AS name, p.house AS house, p.alive AS alive,
       friends_count, enemy_count, fam_count`,
		map[string]any{"name": name, "houses": FeatureHouses})
	if err != nil {
		return nil, fmt.Errorf("graph: survival features: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	house := stringVal(rec, "house")
	return &SurvivalFeatures{
		Name:      stringVal(rec, "name"),
		House:     house,
		HouseCode: HouseCode(house),
		Alive:     boolVal(rec, "alive"),
		Friends:   int64Val(rec, "friends_count"),
		Enemies:   int64Val(rec, "enemy_count"),
		Family:    int64Val(rec, "fam_count"),
	}, nil
}
