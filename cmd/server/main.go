package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hallowgraph/backend/internal/handlers"
	"github.com/hallowgraph/backend/internal/platform/envutil"
	"github.com/hallowgraph/backend/internal/platform/logger"
	"github.com/hallowgraph/backend/internal/platform/neo4jdb"
	"github.com/hallowgraph/backend/internal/server"
	"github.com/hallowgraph/backend/internal/services"
)

func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("Could not connect to graph store", "error", err)
	}
	defer client.Close(context.Background())

	views := services.NewGraphViewService(client, log)
	features := services.NewFeatureService(client, log)

	router := server.NewRouter(server.RouterConfig{
		CharacterHandler: handlers.NewCharacterHandler(views),
		GraphHandler:     handlers.NewGraphHandler(views),
		FeatureHandler:   handlers.NewFeatureHandler(features),
	})

	port := envutil.String("PORT", "5000")
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
