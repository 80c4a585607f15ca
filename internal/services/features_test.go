package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hallowgraph/backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestBuildAdhocVectorPositions(t *testing.T) {
	houses := map[string]string{
		"Ron Weasley":      "Gryffindor",
		"Hermione Granger": "Gryffindor",
		"Neville":          "Gryffindor",
		"Draco Malfoy":     "Slytherin",
		"Vincent Crabbe":   "Slytherin",
		"Cho Chang":        "Ravenclaw",
	}
	in := AdhocInput{
		Friends:  []string{"Ron Weasley", "Hermione Granger", "Neville"},
		Enemies:  []string{"Draco Malfoy", "Vincent Crabbe"},
		Romances: []string{"Cho Chang"},
	}

	vec := buildAdhocVector(houses, in)
	if len(vec) != 16 {
		t.Fatalf("expected 16 features, got %d", len(vec))
	}
	// Order: friend_g s r h, enemy_g s r h, fam_g s r h, love_g s r h.
	if vec[0] != 3 {
		t.Fatalf("expected 3 at friend/Gryffindor, got %d", vec[0])
	}
	if vec[5] != 2 {
		t.Fatalf("expected 2 at enemy/Slytherin, got %d", vec[5])
	}
	if vec[14] != 1 {
		t.Fatalf("expected 1 at love/Ravenclaw, got %d", vec[14])
	}
	var total int64
	for _, v := range vec {
		total += v
	}
	if total != 6 {
		t.Fatalf("stray counts in vector: %v", vec)
	}
}

func TestBuildAdhocVectorSkipsUnknowns(t *testing.T) {
	houses := map[string]string{
		"Dobby": "", // resolved, but no house
	}
	in := AdhocInput{
		Friends: []string{"Dobby", "Nobody In Graph"},
	}
	for i, v := range buildAdhocVector(houses, in) {
		if v != 0 {
			t.Fatalf("expected zero vector, got %d at %d", v, i)
		}
	}
}

func TestAdhocVectorInsufficientInput(t *testing.T) {
	s := NewFeatureService(nil, testLogger(t))
	_, err := s.AdhocVector(context.Background(), AdhocInput{Name: "Someone"})
	if !errors.Is(err, ErrInsufficientInput) {
		t.Fatalf("expected ErrInsufficientInput, got %v", err)
	}
}
