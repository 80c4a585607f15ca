package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/hallowgraph/backend/internal/characters"
	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
	"github.com/hallowgraph/backend/internal/relations"
)

// Relationship type names on the wire. These are part of the graph's
// contract with the query surface and the classifiers.
const (
	RelBelongsTo    = "BELONGS_TO"
	RelSameAncestry = "SAME_ANCESTRY"
	RelSameMaterial = "SAME_WAND_MATERIAL"
	RelSameSpecies  = "SAME_SPECIES"
	RelSameFamily   = "SAME_FAMILY"
	RelFriend       = "FRIEND_OF"
	RelEnemy        = "ENEMY_OF"
	RelRomantic     = "ROMANTIC_WITH"
)

// writeBatch runs the statements as one managed write transaction. Each
// ingestion step is its own batch: a failure aborts that batch only, and
// batches already committed stay committed.
func writeBatch(ctx context.Context, client *neo4jdb.Client, stmts []statement) error {
	if client == nil || client.Driver == nil {
		return fmt.Errorf("graph: client required")
	}
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, s := range stmts {
			res, err := tx.Run(ctx, s.query, s.params)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

type statement struct {
	query  string
	params map[string]any
}

// Reset deletes every node and edge. It must complete before any insert
// of the same run proceeds.
func Reset(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) error {
	log.Info("Clearing graph...")
	if err := writeBatch(ctx, client, []statement{{query: `MATCH (n) DETACH DELETE n`}}); err != nil {
		return fmt.Errorf("graph: reset: %w", err)
	}
	return nil
}

// EnsureConstraints creates the uniqueness constraints. Best-effort: a
// store without the constraint syntax still ingests correctly, MERGE
// keys carry the semantics.
func EnsureConstraints(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) {
	if client == nil || client.Driver == nil {
		return
	}
	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	stmts := []string{
		`CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE`,
		`CREATE CONSTRAINT house_name IF NOT EXISTS FOR (h:House) REQUIRE h.name IS UNIQUE`,
	}
	for _, q := range stmts {
		if res, err := session.Run(ctx, q, nil); err != nil {
			log.Warn("constraint init failed (continuing)", "error", err)
		} else {
			_, _ = res.Consume(ctx)
		}
	}
}

// UpsertPersons merge-writes the canonical entity set keyed by id.
func UpsertPersons(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, chars []*characters.Character) error {
	rows := make([]map[string]any, 0, len(chars))
	for _, ch := range chars {
		rows = append(rows, map[string]any{
			"id":              ch.ID,
			"name":            ch.Name,
			"house":           ch.House,
			"species":         ch.Species,
			"gender":          ch.Gender,
			"ancestry":        ch.Ancestry,
			"wand":            ch.Wand,
			"patronus":        ch.Patronus,
			"hogwartsStudent": ch.Student,
			"hogwartsStaff":   ch.Staff,
			"alive":           ch.Alive,
			"image":           ch.Image,
		})
	}
	log.Info("Upserting persons...", "count", len(rows))
	err := writeBatch(ctx, client, []statement{{
		query: `
UNWIND $people AS p
MERGE (n:Person {id: p.id})
SET n += p
`,
		params: map[string]any{"people": rows},
	}})
	if err != nil {
		return fmt.Errorf("graph: upsert persons: %w", err)
	}
	return nil
}

// UpsertHouses merge-writes one House node per distinct house value and
// the BELONGS_TO edge for every person carrying that value.
func UpsertHouses(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, chars []*characters.Character) error {
	seen := make(map[string]bool)
	var houses []string
	var links []map[string]any
	for _, ch := range chars {
		if ch.House == "" {
			continue
		}
		if !seen[ch.House] {
			seen[ch.House] = true
			houses = append(houses, ch.House)
		}
		links = append(links, map[string]any{"person_id": ch.ID, "house": ch.House})
	}
	log.Info("Upserting houses...", "houses", len(houses), "links", len(links))
	err := writeBatch(ctx, client, []statement{
		{
			query:  `UNWIND $houses AS name MERGE (h:House {name: name})`,
			params: map[string]any{"houses": houses},
		},
		{
			query: `
UNWIND $links AS l
MATCH (p:Person {id: l.person_id})
MATCH (h:House {name: l.house})
MERGE (p)-[:BELONGS_TO]->(h)
`,
			params: map[string]any{"links": links},
		},
	})
	if err != nil {
		return fmt.Errorf("graph: upsert houses: %w", err)
	}
	return nil
}

// InferAttributeRelations derives the SAME_* edges from attribute
// equality. Pairs are ordered by id (a.id < b.id) so re-running never
// creates the reverse duplicate.
func InferAttributeRelations(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) error {
	log.Info("Creating attribute relations...")
	err := writeBatch(ctx, client, []statement{
		{query: `
MATCH (a:Person), (b:Person)
WHERE a.ancestry IS NOT NULL AND a.ancestry <> ''
AND a.ancestry = b.ancestry AND a.id < b.id
MERGE (a)-[:SAME_ANCESTRY]->(b)
`},
		{query: `
MATCH (a:Person), (b:Person)
WHERE a.wand IS NOT NULL AND b.wand IS NOT NULL
AND a.wand CONTAINS 'wood' AND b.wand CONTAINS 'wood'
AND a.id < b.id
MERGE (a)-[:SAME_WAND_MATERIAL]->(b)
`},
		{query: `
MATCH (a:Person), (b:Person)
WHERE a.species IS NOT NULL AND a.species <> ''
AND a.species = b.species AND a.id < b.id
MERGE (a)-[:SAME_SPECIES]->(b)
`},
	})
	if err != nil {
		return fmt.Errorf("graph: attribute relations: %w", err)
	}
	return nil
}

// InferFamilyRelations links persons sharing a space-delimited surname.
func InferFamilyRelations(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) error {
	log.Info("Creating family relations...")
	err := writeBatch(ctx, client, []statement{{query: `
MATCH (a:Person), (b:Person)
WHERE a.id < b.id
AND size(split(a.name, ' ')) > 1 AND size(split(b.name, ' ')) > 1
AND last(split(a.name, ' ')) = last(split(b.name, ' '))
MERGE (a)-[:SAME_FAMILY]->(b)
`}})
	if err != nil {
		return fmt.Errorf("graph: family relations: %w", err)
	}
	return nil
}

// ApplyFactEdges applies the curated friend/enemy pairs by exact name
// match on both ends. Pairs matching nothing are no-ops.
func ApplyFactEdges(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, facts *relations.FactTable) error {
	if facts == nil {
		return nil
	}
	log.Info("Creating canon relations...", "friends", len(facts.Friends), "enemies", len(facts.Enemies))
	err := writeBatch(ctx, client, []statement{
		{
			query: `
UNWIND $pairs AS pair
MATCH (a:Person {name: pair.a}), (b:Person {name: pair.b})
MERGE (a)-[:FRIEND_OF]->(b)
`,
			params: map[string]any{"pairs": pairRows(facts.Friends)},
		},
		{
			query: `
UNWIND $pairs AS pair
MATCH (a:Person {name: pair.a}), (b:Person {name: pair.b})
MERGE (a)-[:ENEMY_OF]->(b)
`,
			params: map[string]any{"pairs": pairRows(facts.Enemies)},
		},
	})
	if err != nil {
		return fmt.Errorf("graph: fact edges: %w", err)
	}
	return nil
}

func pairRows(pairs []relations.NamePair) []map[string]any {
	rows := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, map[string]any{"a": p.A, "b": p.B})
	}
	return rows
}

// ApplyRomanceEdges writes the resolved romance edges by id. Edges whose
// endpoints are missing are no-ops.
func ApplyRomanceEdges(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, edges []relations.Edge) error {
	rows := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, map[string]any{"source": e.SourceID, "target": e.TargetID})
	}
	log.Info("Creating romance relations...", "count", len(rows))
	err := writeBatch(ctx, client, []statement{{
		query: `
UNWIND $edges AS e
MATCH (a:Person {id: e.source}), (b:Person {id: e.target})
MERGE (a)-[:ROMANTIC_WITH]->(b)
`,
		params: map[string]any{"edges": rows},
	}})
	if err != nil {
		return fmt.Errorf("graph: romance edges: %w", err)
	}
	return nil
}

// UserRelations are the raw name lists a caller contributes for one ad
// hoc entity on the prediction path.
type UserRelations struct {
	Friends  []string
	Enemies  []string
	Family   []string
	Romances []string
}

// MergeUserRelations merge-writes an ad hoc user entity and its edges to
// exactly-matching persons, with the same idempotent keying as ingestion.
func MergeUserRelations(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, id, name string, rel UserRelations) error {
	stmts := []statement{{
		query:  `MERGE (u:Person {id: $id}) SET u.name = $name`,
		params: map[string]any{"id": id, "name": name},
	}}
	edgeBatches := []struct {
		relType string
		names   []string
	}{
		{RelFriend, rel.Friends},
		{RelEnemy, rel.Enemies},
		{RelSameFamily, rel.Family},
		{RelRomantic, rel.Romances},
	}
	for _, b := range edgeBatches {
		if len(b.names) == 0 {
			continue
		}
		stmts = append(stmts, statement{
			query: fmt.Sprintf(`
UNWIND $names AS n
MATCH (u:Person {id: $id})
MATCH (b:Person {name: n})
MERGE (u)-[:%s]->(b)
`, b.relType),
			params: map[string]any{"id": id, "names": b.names},
		})
	}
	if err := writeBatch(ctx, client, stmts); err != nil {
		return fmt.Errorf("graph: merge user relations: %w", err)
	}
	return nil
}
