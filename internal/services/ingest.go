package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hallowgraph/backend/internal/characters"
	"github.com/hallowgraph/backend/internal/data/graph"
	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
	"github.com/hallowgraph/backend/internal/relations"
	"github.com/hallowgraph/backend/internal/sources"
)

// IngestService runs one full pipeline pass: fetch both sources,
// reconcile, reset the graph, then upsert and infer batch by batch.
type IngestService struct {
	client  *neo4jdb.Client
	log     *logger.Logger
	fetcher *sources.Client
	facts   *relations.FactTable
}

// IngestStats summarizes one run for the operator.
type IngestStats struct {
	PrimaryRecords      int
	SupplementalRecords int
	Entities            int
	RomanceEdges        int
}

func NewIngestService(client *neo4jdb.Client, log *logger.Logger, fetcher *sources.Client, facts *relations.FactTable) *IngestService {
	return &IngestService{
		client:  client,
		log:     log.With("service", "Ingest"),
		fetcher: fetcher,
		facts:   facts,
	}
}

// Run executes the pipeline. Source fetches run concurrently and are
// never fatal; graph batches run in strict order and the first failed
// batch halts the run, leaving earlier batches committed.
func (s *IngestService) Run(ctx context.Context) (*IngestStats, error) {
	var primary, supplemental []sources.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary = s.fetcher.FetchHPAPI(gctx)
		return nil
	})
	g.Go(func() error {
		supplemental = s.fetcher.FetchPotterDB(gctx)
		return nil
	})
	_ = g.Wait()

	chars := characters.Merge(primary, supplemental)
	romances := relations.ResolveRomances(chars)
	s.log.Info("Reconciled sources",
		"primary", len(primary),
		"supplemental", len(supplemental),
		"entities", len(chars),
		"romance_edges", len(romances))

	if err := graph.Reset(ctx, s.client, s.log); err != nil {
		return nil, err
	}
	graph.EnsureConstraints(ctx, s.client, s.log)

	if err := graph.UpsertPersons(ctx, s.client, s.log, chars); err != nil {
		return nil, err
	}
	if err := graph.UpsertHouses(ctx, s.client, s.log, chars); err != nil {
		return nil, err
	}
	if err := graph.InferAttributeRelations(ctx, s.client, s.log); err != nil {
		return nil, err
	}
	if err := graph.InferFamilyRelations(ctx, s.client, s.log); err != nil {
		return nil, err
	}
	if err := graph.ApplyFactEdges(ctx, s.client, s.log, s.facts); err != nil {
		return nil, err
	}
	if err := graph.ApplyRomanceEdges(ctx, s.client, s.log, romances); err != nil {
		return nil, err
	}

	return &IngestStats{
		PrimaryRecords:      len(primary),
		SupplementalRecords: len(supplemental),
		Entities:            len(chars),
		RomanceEdges:        len(romances),
	}, nil
}
