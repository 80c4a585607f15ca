package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/hallowgraph/backend/internal/data/graph"
	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
)

// ErrInsufficientInput marks an aggregation request with no neighbors at
// all. It is distinct from a legitimate all-zero vector, which consumers
// must be able to trust.
var ErrInsufficientInput = errors.New("features: insufficient input")

// adhocNamespace derives stable ids for caller-contributed entities, so
// repeating a request merges instead of duplicating.
var adhocNamespace = uuid.MustParse("8a0a8c9e-4f10-43b7-9c2f-5cf5f6f7b0d4")

// AdhocInput is the raw-list form of the aggregation request.
type AdhocInput struct {
	Name     string
	Friends  []string
	Enemies  []string
	Family   []string
	Romances []string
}

func (in AdhocInput) empty() bool {
	return len(in.Friends) == 0 && len(in.Enemies) == 0 && len(in.Family) == 0 && len(in.Romances) == 0
}

// FeatureService computes the relationship-count vectors consumed by the
// classifiers.
type FeatureService struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewFeatureService(client *neo4jdb.Client, log *logger.Logger) *FeatureService {
	return &FeatureService{client: client, log: log.With("service", "Features")}
}

// PersonVector returns the stored entity's 16-count vector, or nil when
// the name resolves to nothing.
func (s *FeatureService) PersonVector(ctx context.Context, name string) (*graph.RelationFeatures, error) {
	return graph.PersonRelationFeatures(ctx, s.client, s.log, name)
}

// PersonSurvival returns the narrow survival feature set.
func (s *FeatureService) PersonSurvival(ctx context.Context, name string) (*graph.SurvivalFeatures, error) {
	return graph.PersonSurvivalFeatures(ctx, s.client, s.log, name)
}

// Export returns the vector for every entity in the closed house set.
func (s *FeatureService) Export(ctx context.Context) ([]graph.RelationFeatures, error) {
	return graph.AllRelationFeatures(ctx, s.client, s.log)
}

// AdhocVector computes the 16-count vector from caller-supplied name
// lists, resolving each name's house against the graph. When a display
// name is supplied the lists are also merged into the graph as an ad hoc
// entity with the usual idempotent edge keying.
func (s *FeatureService) AdhocVector(ctx context.Context, in AdhocInput) ([]int64, error) {
	if in.empty() {
		return nil, ErrInsufficientInput
	}

	all := make([]string, 0, len(in.Friends)+len(in.Enemies)+len(in.Family)+len(in.Romances))
	seen := make(map[string]bool)
	for _, group := range [][]string{in.Friends, in.Enemies, in.Family, in.Romances} {
		for _, n := range group {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			all = append(all, n)
		}
	}
	houses, err := graph.HousesByName(ctx, s.client, s.log, all)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		id := "adhoc-" + uuid.NewSHA1(adhocNamespace, []byte(name)).String()
		rel := graph.UserRelations{
			Friends:  in.Friends,
			Enemies:  in.Enemies,
			Family:   in.Family,
			Romances: in.Romances,
		}
		if err := graph.MergeUserRelations(ctx, s.client, s.log, id, name, rel); err != nil {
			return nil, err
		}
	}

	return buildAdhocVector(houses, in), nil
}

// buildAdhocVector counts neighbors per house per relationship family in
// the contract order: friends, enemies, family, romances, each across
// FeatureHouses. Unresolved names and houses outside the closed set are
// not counted.
func buildAdhocVector(houses map[string]string, in AdhocInput) []int64 {
	houseIndex := make(map[string]int, len(graph.FeatureHouses))
	for i, h := range graph.FeatureHouses {
		houseIndex[h] = i
	}
	n := len(graph.FeatureHouses)
	vec := make([]int64, 4*n)
	groups := [][]string{in.Friends, in.Enemies, in.Family, in.Romances}
	for gi, group := range groups {
		for _, name := range group {
			house, ok := houses[name]
			if !ok {
				continue
			}
			hi, ok := houseIndex[house]
			if !ok {
				continue
			}
			vec[gi*n+hi]++
		}
	}
	return vec
}
