package services

import (
	"context"

	"github.com/hallowgraph/backend/internal/data/graph"
	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
)

// DefaultNeighborhoodLimit bounds the direct-edge fetch when the caller
// does not say otherwise.
const DefaultNeighborhoodLimit = 50

// Node is one display node. Group is "person" or "house"; House is only
// set for person nodes.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
	House string `json:"house,omitempty"`
}

// Edge is one display edge between node ids.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// GraphView is a deduplicated node/edge collection for visualization.
type GraphView struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// GraphViewService answers the read-only subgraph queries. It never
// mutates the graph.
type GraphViewService struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewGraphViewService(client *neo4jdb.Client, log *logger.Logger) *GraphViewService {
	return &GraphViewService{client: client, log: log.With("service", "GraphView")}
}

// Neighborhood builds the subgraph around one person: their direct edges
// up to limit, unioned with everyone sharing their house. An unknown
// name yields an empty view.
func (s *GraphViewService) Neighborhood(ctx context.Context, name string, limit int) (*GraphView, error) {
	if limit <= 0 {
		limit = DefaultNeighborhoodLimit
	}
	target, direct, err := graph.NeighborhoodRows(ctx, s.client, s.log, name, limit)
	if err != nil {
		return nil, err
	}
	mates, err := graph.HousemateRows(ctx, s.client, s.log, target)
	if err != nil {
		return nil, err
	}
	return assembleNeighborhood(direct, mates), nil
}

// assembleNeighborhood folds housemate rows first, then direct rows.
// Nodes are deduplicated by id; an edge is always appended even when
// both endpoints were already present.
func assembleNeighborhood(direct []graph.RelRow, mates []graph.HousemateRow) *GraphView {
	view := &GraphView{Nodes: []Node{}, Edges: []Edge{}}
	added := make(map[string]bool)

	addNode := func(n Node) {
		if n.ID == "" || added[n.ID] {
			return
		}
		added[n.ID] = true
		view.Nodes = append(view.Nodes, n)
	}

	for _, m := range mates {
		addNode(Node{ID: m.House, Label: m.House, Group: "house"})
		addNode(Node{ID: m.MateID, Label: m.MateName, Group: "person", House: m.MateHouse})
		view.Edges = append(view.Edges, Edge{Source: m.MateID, Target: m.House, Label: graph.RelBelongsTo})
	}

	for _, r := range direct {
		addNode(Node{ID: r.SourceID, Label: r.SourceName, Group: "person", House: r.SourceHouse})
		targetGroup := "person"
		targetHouse := r.TargetHouse
		if r.TargetIsHouse {
			targetGroup = "house"
			targetHouse = ""
		}
		addNode(Node{ID: r.TargetID, Label: r.TargetLabel, Group: targetGroup, House: targetHouse})
		view.Edges = append(view.Edges, Edge{Source: r.SourceID, Target: r.TargetID, Label: r.RelType})
	}

	return view
}

// HouseSubgraph builds the induced subgraph over a house set: the
// persons in those houses, the edges among them, the House nodes, and
// each person's affiliation edge. Edges to persons outside the set are
// never included.
func (s *GraphViewService) HouseSubgraph(ctx context.Context, houses []string) (*GraphView, error) {
	persons, err := graph.SubgraphPersons(ctx, s.client, s.log, houses)
	if err != nil {
		return nil, err
	}
	edges, err := graph.SubgraphEdges(ctx, s.client, s.log, houses)
	if err != nil {
		return nil, err
	}
	houseNodes, err := graph.SubgraphHouses(ctx, s.client, s.log, houses)
	if err != nil {
		return nil, err
	}
	return assembleHouseSubgraph(persons, edges, houseNodes), nil
}

func assembleHouseSubgraph(persons []graph.PersonRow, edges []graph.PersonEdgeRow, houses []string) *GraphView {
	view := &GraphView{Nodes: []Node{}, Edges: []Edge{}}
	added := make(map[string]bool)

	for _, h := range houses {
		if h == "" || added[h] {
			continue
		}
		added[h] = true
		view.Nodes = append(view.Nodes, Node{ID: h, Label: h, Group: "house"})
	}
	for _, p := range persons {
		if p.ID == "" || added[p.ID] {
			continue
		}
		added[p.ID] = true
		view.Nodes = append(view.Nodes, Node{ID: p.ID, Label: p.Name, Group: "person", House: p.House})
	}
	for _, e := range edges {
		view.Edges = append(view.Edges, Edge{Source: e.SourceID, Target: e.TargetID, Label: e.RelType})
	}
	// Affiliation edges derive from the persons already in view; the
	// matching House node is guaranteed in-set.
	for _, p := range persons {
		if p.House == "" {
			continue
		}
		view.Edges = append(view.Edges, Edge{Source: p.ID, Target: p.House, Label: graph.RelBelongsTo})
	}
	return view
}

// Search returns up to ten names containing the query, case-insensitive.
func (s *GraphViewService) Search(ctx context.Context, q string) ([]string, error) {
	return graph.SearchNames(ctx, s.client, s.log, q)
}

// Characters returns the list view of every person, ordered by name.
func (s *GraphViewService) Characters(ctx context.Context) ([]graph.CharacterSummary, error) {
	return graph.ListCharacters(ctx, s.client, s.log)
}
