package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hallowgraph/backend/internal/platform/envutil"
	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
	"github.com/hallowgraph/backend/internal/relations"
	"github.com/hallowgraph/backend/internal/services"
	"github.com/hallowgraph/backend/internal/sources"
)

func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("Could not connect to graph store", "error", err)
	}
	defer client.Close(ctx)

	facts, err := relations.LoadFacts(envutil.String("CANON_FACTS_FILE", ""))
	if err != nil {
		log.Fatal("Could not load canon facts", "error", err)
	}

	fetcher := sources.NewClient(sources.Config{
		HPAPIURL:    envutil.String("HP_API_URL", ""),
		PotterDBURL: envutil.String("POTTERDB_URL", ""),
		MaxPages:    envutil.Int("POTTERDB_MAX_PAGES", 0),
	}, log)

	ingest := services.NewIngestService(client, log, fetcher, facts)
	stats, err := ingest.Run(ctx)
	if err != nil {
		log.Fatal("Ingestion failed", "error", err)
	}
	log.Info("Ingestion complete",
		"primary_records", stats.PrimaryRecords,
		"supplemental_records", stats.SupplementalRecords,
		"entities", stats.Entities,
		"romance_edges", stats.RomanceEdges)
}
