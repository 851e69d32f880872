package main

import (
	"context"
	"os"

	"github.com/ggorockee/happyhours/internal/aggregator"
	"github.com/ggorockee/happyhours/internal/cli"
	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/internal/database"
	"github.com/ggorockee/happyhours/internal/extractor"
	"github.com/ggorockee/happyhours/internal/googleplaces"
	"github.com/ggorockee/happyhours/internal/imagesync"
	"github.com/ggorockee/happyhours/internal/kvstore"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/internal/telemetry"
)

func main() {
	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.GetLogger("admin")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	tel, err := telemetry.New(ctx, &cfg.Telemetry)
	if err != nil {
		log.Errorf("Failed to initialize telemetry: %v", err)
	}

	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	regions, err := extractor.LoadRegions(cfg.Region.RegionsFile)
	if err != nil {
		log.Fatalf("Failed to load regions: %v", err)
	}

	var places aggregator.PlaceSearcher
	if cfg.Places.Enabled() {
		places = googleplaces.New(&cfg.Places)
	}

	deps := cli.Dependencies{
		Store:         store,
		Regions:       regions,
		DefaultRegion: cfg.Region.Default,
		Places:        places,
		Telemetry:     tel,
		OpenS3: func(ctx context.Context) (imagesync.S3API, error) {
			return imagesync.NewS3Client(ctx, &cfg.AWS)
		},
		ImagePrefix: cfg.AWS.ImagePrefix,
		ImageBucket: cfg.AWS.ImageBucket,
		OpenDB: func() (*database.DB, error) {
			db, err := database.Connect(cfg)
			if err != nil {
				return nil, err
			}
			if err := database.Migrate(db); err != nil {
				_ = db.Close()
				return nil, err
			}
			return db, nil
		},
	}

	code := cli.Execute(ctx, os.Args[1:], deps, os.Stdout, os.Stderr)

	kvstore.Close(store)
	_ = tel.Shutdown(ctx)
	logger.Sync()
	os.Exit(code)
}
