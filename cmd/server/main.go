package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/refstash/refstash-go/internal/config"
	"github.com/refstash/refstash-go/internal/db"
	"github.com/refstash/refstash-go/internal/handler"
	"github.com/refstash/refstash-go/internal/middleware"
	"github.com/refstash/refstash-go/internal/repository"
	"github.com/refstash/refstash-go/internal/router"
	"github.com/refstash/refstash-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "refstash-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)
	cache.OnHit = func() { handler.Metrics.CacheHits.Inc() }
	cache.OnMiss = func() { handler.Metrics.CacheMisses.Inc() }

	// Repositories
	videoRepo := repository.NewVideoRepo(pool)
	categoryRepo := repository.NewCategoryRepo(pool)
	taxonomyRepo := repository.NewTaxonomyRepo(pool)
	tutorialRepo := repository.NewTutorialRepo(pool)
	collectionRepo := repository.NewCollectionRepo(pool)

	// Services
	qualitySvc := service.NewQualityService(pool)
	qualitySvc.ObserveRecalc = func(d time.Duration) {
		handler.Metrics.QualityRecalcDuration.Observe(d.Seconds())
	}
	searchSvc := service.NewSearchService(pool, videoRepo, categoryRepo)
	videoSvc := service.NewVideoService(videoRepo, taxonomyRepo, tutorialRepo, qualitySvc, cache)
	tutorialSvc := service.NewTutorialService(tutorialRepo, videoRepo, cache)
	taxonomySvc := service.NewTaxonomyService(taxonomyRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	collectionSvc := service.NewCollectionService(collectionRepo, videoRepo, cache)
	statsSvc := service.NewStatsService(pool)

	// Background quality recalculation
	worker := service.NewQualityWorker(pool, qualitySvc, cache)
	go worker.Start(ctx)

	handlers := &router.Handlers{
		Video:      handler.NewVideoHandler(videoSvc, searchSvc),
		Tutorial:   handler.NewTutorialHandler(tutorialSvc),
		Taxonomy:   handler.NewTaxonomyHandler(taxonomySvc),
		Category:   handler.NewCategoryHandler(categorySvc),
		Collection: handler.NewCollectionHandler(collectionSvc),
		Stats:      handler.NewStatsHandler(statsSvc),
		Health:     handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "RefStash API",
		ServerHeader: "RefStash",
	})
	router.Setup(app, handlers, cfg.CORSOrigins)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutdown signal received")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("RefStash backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
