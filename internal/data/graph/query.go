package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
)

// Caps on the read side. Neighborhood limits are caller-supplied; these
// bound the traversals that would otherwise scan the whole graph.
const (
	HousemateLimit  = 100
	SubgraphRowCap  = 5000
	SearchNameLimit = 10
)

// RelRow is one edge touching the neighborhood target, with both
// endpoints denormalized for view assembly.
type RelRow struct {
	SourceID      string
	SourceName    string
	SourceHouse   string
	TargetID      string
	TargetLabel   string
	TargetHouse   string
	TargetIsHouse bool
	RelType       string
}

// HousemateRow is one person sharing the target's house.
type HousemateRow struct {
	House     string
	MateID    string
	MateName  string
	MateHouse string
}

// PersonRow is a bare person reference.
type PersonRow struct {
	ID    string
	Name  string
	House string
}

// PersonEdgeRow is a person-to-person edge inside a filtered subgraph.
type PersonEdgeRow struct {
	SourceID string
	TargetID string
	RelType  string
}

// CharacterSummary is the list-view projection of a person.
type CharacterSummary struct {
	Name    string `json:"name"`
	House   string `json:"house"`
	Species string `json:"species"`
	Alive   bool   `json:"alive"`
	Image   string `json:"image"`
}

func readRows(ctx context.Context, client *neo4jdb.Client, query string, params map[string]any) ([]*neo4j.Record, error) {
	if client == nil || client.Driver == nil {
		return nil, fmt.Errorf("graph: client required")
	}
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, _ := out.([]*neo4j.Record)
	return records, nil
}

func stringVal(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func int64Val(rec *neo4j.Record, key string) int64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	i, _ := v.(int64)
	return i
}

func boolVal(rec *neo4j.Record, key string) bool {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

const neighborhoodReturn = `
RETURN p.id AS source_id, p.name AS source_name, p.house AS source_house,
       coalesce(m.id, m.name) AS target_id,
       coalesce(m.name, m.id) AS target_label,
       m.house AS target_house,
       'House' IN labels(m) AS target_is_house,
       type(r) AS rel
LIMIT $limit`

// NeighborhoodRows fetches every edge touching the named person, up to
// limit. An exact name miss retries as a case-insensitive substring
// search and anchors on the first match. The resolved display name comes
// back so the housemate fetch targets the right person; rows may be
// empty without error.
func NeighborhoodRows(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, name string, limit int) (string, []RelRow, error) {
	records, err := readRows(ctx, client, `
MATCH (p:Person {name: $name})-[r]-(m)`+neighborhoodReturn,
		map[string]any{"name": name, "limit": limit})
	if err != nil {
		return "", nil, fmt.Errorf("graph: neighborhood: %w", err)
	}
	if len(records) == 0 {
		records, err = readRows(ctx, client, `
MATCH (p:Person)-[r]-(m)
WHERE toLower(p.name) CONTAINS toLower($name)`+neighborhoodReturn,
			map[string]any{"name": name, "limit": limit})
		if err != nil {
			return "", nil, fmt.Errorf("graph: neighborhood fallback: %w", err)
		}
	}

	target := name
	rows := make([]RelRow, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			target = stringVal(rec, "source_name")
		}
		rows = append(rows, RelRow{
			SourceID:      stringVal(rec, "source_id"),
			SourceName:    stringVal(rec, "source_name"),
			SourceHouse:   stringVal(rec, "source_house"),
			TargetID:      stringVal(rec, "target_id"),
			TargetLabel:   stringVal(rec, "target_label"),
			TargetHouse:   stringVal(rec, "target_house"),
			TargetIsHouse: boolVal(rec, "target_is_house"),
			RelType:       stringVal(rec, "rel"),
		})
	}
	return target, rows, nil
}

// HousemateRows fetches every other person affiliated with the target's
// house, capped at HousemateLimit.
func HousemateRows(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, name string) ([]HousemateRow, error) {
	records, err := readRows(ctx, client, `
MATCH (p:Person {name: $name})-[:BELONGS_TO]->(h:House)<-[:BELONGS_TO]-(mate:Person)
RETURN h.name AS house, mate.id AS mate_id, mate.name AS mate_name, mate.house AS mate_house
LIMIT $limit`,
		map[string]any{"name": name, "limit": HousemateLimit})
	if err != nil {
		return nil, fmt.Errorf("graph: housemates: %w", err)
	}
	rows := make([]HousemateRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, HousemateRow{
			House:     stringVal(rec, "house"),
			MateID:    stringVal(rec, "mate_id"),
			MateName:  stringVal(rec, "mate_name"),
			MateHouse: stringVal(rec, "mate_house"),
		})
	}
	return rows, nil
}

// SubgraphPersons returns every person whose house is in the set.
func SubgraphPersons(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, houses []string) ([]PersonRow, error) {
	records, err := readRows(ctx, client, `
MATCH (p:Person)
WHERE p.house IN $houses
RETURN p.id AS id, p.name AS name, p.house AS house
LIMIT $cap`,
		map[string]any{"houses": houses, "cap": SubgraphRowCap})
	if err != nil {
		return nil, fmt.Errorf("graph: subgraph persons: %w", err)
	}
	rows := make([]PersonRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, PersonRow{
			ID:    stringVal(rec, "id"),
			Name:  stringVal(rec, "name"),
			House: stringVal(rec, "house"),
		})
	}
	return rows, nil
}

// SubgraphEdges returns person-person edges with both endpoints inside
// the house set. Edges leaving the set are never returned.
func SubgraphEdges(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, houses []string) ([]PersonEdgeRow, error) {
	records, err := readRows(ctx, client, `
MATCH (a:Person)-[r]->(b:Person)
WHERE a.house IN $houses AND b.house IN $houses
RETURN a.id AS source, b.id AS target, type(r) AS rel
LIMIT $cap`,
		map[string]any{"houses": houses, "cap": SubgraphRowCap})
	if err != nil {
		return nil, fmt.Errorf("graph: subgraph edges: %w", err)
	}
	rows := make([]PersonEdgeRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, PersonEdgeRow{
			SourceID: stringVal(rec, "source"),
			TargetID: stringVal(rec, "target"),
			RelType:  stringVal(rec, "rel"),
		})
	}
	return rows, nil
}

// SubgraphHouses returns the House nodes present from the requested set.
func SubgraphHouses(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, houses []string) ([]string, error) {
	records, err := readRows(ctx, client, `
MATCH (h:House)
WHERE h.name IN $houses
RETURN h.name AS name`,
		map[string]any{"houses": houses})
	if err != nil {
		return nil, fmt.Errorf("graph: subgraph houses: %w", err)
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, stringVal(rec, "name"))
	}
	return out, nil
}

// SearchNames is the case-insensitive contains search over display
// names. No match is an empty slice, not an error.
func SearchNames(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, q string) ([]string, error) {
	records, err := readRows(ctx, client, `
MATCH (p:Person)
WHERE toLower(p.name) CONTAINS toLower($q)
RETURN p.name AS name
LIMIT $limit`,
		map[string]any{"q": q, "limit": SearchNameLimit})
	if err != nil {
		return nil, fmt.Errorf("graph: search: %w", err)
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, stringVal(rec, "name"))
	}
	return out, nil
}

// ListCharacters returns every person ordered by name.
func ListCharacters(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) ([]CharacterSummary, error) {
	records, err := readRows(ctx, client, `
MATCH (p:Person)
RETURN p.name AS name, p.house AS house, p.species AS species, p.alive AS alive, p.image AS image
ORDER BY p.name`, nil)
	if err != nil {
		return nil, fmt.Errorf("graph: list characters: %w", err)
	}
	out := make([]CharacterSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, CharacterSummary{
			Name:    stringVal(rec, "name"),
			House:   stringVal(rec, "house"),
			Species: stringVal(rec, "species"),
			Alive:   boolVal(rec, "alive"),
			Image:   stringVal(rec, "image"),
		})
	}
	return out, nil
}

// HousesByName resolves display names to house values by exact match.
// Names that match nothing are absent from the result.
func HousesByName(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}
	records, err := readRows(ctx, client, `
UNWIND $names AS n
MATCH (p:Person {name: n})
RETURN n AS name, p.house AS house`,
		map[string]any{"names": names})
	if err != nil {
		return nil, fmt.Errorf("graph: houses by name: %w", err)
	}
	out := make(map[string]string, len(records))
	for _, rec := range records {
		out[stringVal(rec, "name")] = stringVal(rec, "house")
	}
	return out, nil
}
