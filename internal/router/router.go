package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/refstash/refstash-go/internal/handler"
	"github.com/refstash/refstash-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video      *handler.VideoHandler
	Tutorial   *handler.TutorialHandler
	Taxonomy   *handler.TaxonomyHandler
	Category   *handler.CategoryHandler
	Collection *handler.CollectionHandler
	Stats      *handler.StatsHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	readLimit := middleware.NewSearchRateLimiter().Handler()
	writeLimit := middleware.NewWriteRateLimiter().Handler()
	sharedLimit := middleware.NewSharedViewRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()

	// Health and metrics (before API group, unthrottled)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Search and video CRUD
	api.Get("/videos", h.Video.Search, readLimit)
	api.Get("/videos/:id", h.Video.Get, readLimit)
	api.Post("/videos", h.Video.Create, writeLimit)
	api.Put("/videos/:id", h.Video.Update, writeLimit)
	api.Delete("/videos/:id", h.Video.Delete, writeLimit)

	// Per-video associations
	api.Post("/videos/:id/tags/:tagId", h.Video.AttachTag, writeLimit)
	api.Delete("/videos/:id/tags/:tagId", h.Video.DetachTag, writeLimit)
	api.Post("/videos/:id/categories/:categoryId", h.Video.AttachCategory, writeLimit)
	api.Delete("/videos/:id/categories/:categoryId", h.Video.DetachCategory, writeLimit)

	// Tutorials
	api.Get("/videos/:id/tutorials", h.Tutorial.List, readLimit)
	api.Post("/videos/:id/tutorials", h.Tutorial.Create, writeLimit)
	api.Delete("/videos/:id/tutorials/:tutorialId", h.Tutorial.Delete, writeLimit)

	// Taxonomy
	api.Get("/tags", h.Taxonomy.ListTags, readLimit)
	api.Get("/tags/:id", h.Taxonomy.GetTag, readLimit)
	api.Post("/tags", h.Taxonomy.CreateTag, writeLimit)
	api.Put("/tags/:id", h.Taxonomy.RenameTag, writeLimit)
	api.Delete("/tags/:id", h.Taxonomy.DeleteTag, writeLimit)
	api.Post("/tags/:id/merge/:targetId", h.Taxonomy.MergeTags, writeLimit)
	api.Get("/hooks", h.Taxonomy.ListHooks, readLimit)
	api.Get("/transition-types", h.Taxonomy.ListTransitionTypes, readLimit)
	api.Post("/transition-types", h.Taxonomy.CreateTransitionType, writeLimit)
	api.Put("/transition-types/:id", h.Taxonomy.RenameTransitionType, writeLimit)
	api.Delete("/transition-types/:id", h.Taxonomy.DeleteTransitionType, writeLimit)

	// Categories
	api.Get("/categories", h.Category.Tree, readLimit)

	// Collections
	api.Get("/collections", h.Collection.List, readLimit)
	api.Post("/collections", h.Collection.Create, writeLimit)
	api.Post("/collections/:id/videos/:videoId", h.Collection.AddItem, writeLimit)
	api.Delete("/collections/:id/videos/:videoId", h.Collection.RemoveItem, writeLimit)
	api.Get("/shared/:token", h.Collection.Shared, sharedLimit)

	// Stats
	api.Get("/stats", h.Stats.GetStats, statsLimit)
}
