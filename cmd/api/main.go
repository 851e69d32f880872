package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ggorockee/happyhours/internal/aggregator"
	"github.com/ggorockee/happyhours/internal/bookmarks"
	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/internal/database"
	"github.com/ggorockee/happyhours/internal/extractor"
	"github.com/ggorockee/happyhours/internal/googleplaces"
	"github.com/ggorockee/happyhours/internal/handlers"
	"github.com/ggorockee/happyhours/internal/ingest"
	"github.com/ggorockee/happyhours/internal/kvstore"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/internal/middleware"
	"github.com/ggorockee/happyhours/internal/telemetry"
	"github.com/ggorockee/happyhours/internal/verified"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.GetLogger("api")

	// Load configuration (.env 포함)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	tel, err := telemetry.New(ctx, &cfg.Telemetry)
	if err != nil {
		log.Errorf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down telemetry: %v", err)
		}
	}()

	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer kvstore.Close(store)

	regions, err := extractor.LoadRegions(cfg.Region.RegionsFile)
	if err != nil {
		log.Fatalf("Failed to load regions: %v", err)
	}
	region, err := regions.Lookup(cfg.Region.Default)
	if err != nil {
		log.Fatalf("Failed to resolve region: %v", err)
	}

	// happy_hours 테이블 (선택)
	var db *database.DB
	if cfg.DB.Enabled {
		db, err = database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		go database.StartConnectionMetricsCollector(ctx, db, 15*time.Second)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Happy Hours API",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    16 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "Local",
	}))
	app.Use(telemetry.Middleware(telemetry.MiddlewareConfig{Telemetry: tel}))
	app.Use(middleware.Prometheus())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400,
	}))

	repo := verified.NewRepository(store)
	ingestSvc := ingest.NewService(extractor.New(region), repo, tel)

	var places aggregator.PlaceSearcher
	if cfg.Places.Enabled() {
		places = googleplaces.New(&cfg.Places)
	} else {
		log.Info("GOOGLE_PLACES_API_KEY not set, search uses verified records only")
	}
	agg := aggregator.New(repo, places, tel)

	setupRoutes(app, cfg, store, repo, ingestSvc, agg, db)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("Shutting down server...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()

	log.Infof("Server starting on port %s (region=%s, store=%s)", cfg.Server.Port, region.Name, cfg.Store.Backend)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(
	app *fiber.App,
	cfg *config.Config,
	store kvstore.Store,
	repo *verified.Repository,
	ingestSvc *ingest.Service,
	agg *aggregator.Aggregator,
	db *database.DB,
) {
	// Health check endpoints for k8s probes
	handlers.SetupHealthRoutes(app, store)

	// Prometheus
	if cfg.Server.MetricsInternalOnly {
		app.Get("/metrics", middleware.InternalOnly(), middleware.PrometheusHandler())
	} else {
		app.Get("/metrics", middleware.PrometheusHandler())
	}

	// API v1 group
	v1 := app.Group("/v1")

	handlers.SetupPlacesRoutes(v1.Group("/places"), agg)
	handlers.SetupVerifiedRoutes(v1.Group("/verified"), repo, ingestSvc)
	handlers.SetupLocationRoutes(v1.Group("/locations"))
	handlers.SetupBookmarkRoutes(v1, bookmarks.NewService(store))

	if db != nil {
		handlers.SetupHappyHourRoutes(v1.Group("/happy-hours"), db)
	}
}
