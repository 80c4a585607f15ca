package services

import (
	"testing"

	"github.com/hallowgraph/backend/internal/data/graph"
)

func TestAssembleNeighborhoodDedupsNodesKeepsEdges(t *testing.T) {
	direct := []graph.RelRow{
		{
			SourceID: "ch0", SourceName: "Harry Potter", SourceHouse: "Gryffindor",
			TargetID: "ch1", TargetLabel: "Ron Weasley", TargetHouse: "Gryffindor",
			RelType: "FRIEND_OF",
		},
		{
			SourceID: "ch0", SourceName: "Harry Potter", SourceHouse: "Gryffindor",
			TargetID: "ch1", TargetLabel: "Ron Weasley", TargetHouse: "Gryffindor",
			RelType: "SAME_SPECIES",
		},
		{
			SourceID: "ch0", SourceName: "Harry Potter", SourceHouse: "Gryffindor",
			TargetID: "Gryffindor", TargetLabel: "Gryffindor", TargetIsHouse: true,
			RelType: "BELONGS_TO",
		},
	}
	mates := []graph.HousemateRow{
		{House: "Gryffindor", MateID: "ch1", MateName: "Ron Weasley", MateHouse: "Gryffindor"},
	}

	view := assembleNeighborhood(direct, mates)

	// Gryffindor, ch1, ch0, each once.
	if len(view.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d: %+v", len(view.Nodes), view.Nodes)
	}
	// 1 housemate edge + 3 direct edges, duplicates retained.
	if len(view.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d: %+v", len(view.Edges), view.Edges)
	}

	for _, n := range view.Nodes {
		if n.ID == "Gryffindor" && n.Group != "house" {
			t.Fatalf("house node mistagged: %+v", n)
		}
		if n.ID == "ch0" && (n.Group != "person" || n.House != "Gryffindor") {
			t.Fatalf("person node mistagged: %+v", n)
		}
	}
}

func TestAssembleNeighborhoodHousematesOnly(t *testing.T) {
	mates := []graph.HousemateRow{
		{House: "Hufflepuff", MateID: "ch3", MateName: "Cedric Diggory", MateHouse: "Hufflepuff"},
		{House: "Hufflepuff", MateID: "ch4", MateName: "Hannah Abbott", MateHouse: "Hufflepuff"},
	}

	view := assembleNeighborhood(nil, mates)
	if len(view.Nodes) != 3 {
		t.Fatalf("expected house + 2 mates, got %d nodes", len(view.Nodes))
	}
	if len(view.Edges) != 2 {
		t.Fatalf("expected 2 housemate edges, got %d", len(view.Edges))
	}
	for _, e := range view.Edges {
		if e.Label != graph.RelBelongsTo || e.Target != "Hufflepuff" {
			t.Fatalf("unexpected housemate edge: %+v", e)
		}
	}
}

func TestAssembleNeighborhoodEmpty(t *testing.T) {
	view := assembleNeighborhood(nil, nil)
	if view == nil || len(view.Nodes) != 0 || len(view.Edges) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestAssembleHouseSubgraph(t *testing.T) {
	persons := []graph.PersonRow{
		{ID: "ch0", Name: "Harry Potter", House: "Gryffindor"},
		{ID: "ch1", Name: "Ron Weasley", House: "Gryffindor"},
	}
	edges := []graph.PersonEdgeRow{
		{SourceID: "ch0", TargetID: "ch1", RelType: "FRIEND_OF"},
	}
	houses := []string{"Gryffindor"}

	view := assembleHouseSubgraph(persons, edges, houses)
	if len(view.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(view.Nodes))
	}
	// friend edge + 2 affiliation edges
	if len(view.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d: %+v", len(view.Edges), view.Edges)
	}
	var affiliations int
	for _, e := range view.Edges {
		if e.Label == graph.RelBelongsTo {
			affiliations++
			if e.Target != "Gryffindor" {
				t.Fatalf("affiliation edge must stay in-set: %+v", e)
			}
		}
	}
	if affiliations != 2 {
		t.Fatalf("expected 2 affiliation edges, got %d", affiliations)
	}
}
