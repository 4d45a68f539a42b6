package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/refstash/refstash-go/internal/middleware"
	"github.com/refstash/refstash-go/internal/search"
	"github.com/refstash/refstash-go/internal/service"
)

type VideoHandler struct {
	svc    *service.VideoService
	search *service.SearchService
}

func NewVideoHandler(svc *service.VideoService, searchSvc *service.SearchService) *VideoHandler {
	return &VideoHandler{svc: svc, search: searchSvc}
}

// Search handles GET /api/videos
func (h *VideoHandler) Search(c fiber.Ctx) error {
	params := service.SearchParams{
		Query:   middleware.ValidateSearchQuery(fiber.Query[string](c, "q")),
		SortBy:  fiber.Query[string](c, "sort_by"),
		Page:    middleware.ParsePage(fiber.Query[string](c, "page"), 1),
		PerPage: middleware.ParsePage(fiber.Query[string](c, "per_page"), service.DefaultPerPage),
		Filters: search.Filters{
			CategoryIDs:      middleware.ParseIDList(fiber.Query[string](c, "category_ids")),
			TagIDs:           middleware.ParseIDList(fiber.Query[string](c, "tag_ids")),
			HookIDs:          middleware.ParseIDList(fiber.Query[string](c, "hook_ids")),
			Platforms:        middleware.ParseStringList(fiber.Query[string](c, "platforms")),
			Pacings:          middleware.ParseStringList(fiber.Query[string](c, "pacings")),
			ProductionLevels: middleware.ParseStringList(fiber.Query[string](c, "production_levels")),
			HasVisualEffects: middleware.ParseBoolParam(fiber.Query[string](c, "has_visual_effects")),
			Has3D:            middleware.ParseBoolParam(fiber.Query[string](c, "has_3d")),
			HasAnimations:    middleware.ParseBoolParam(fiber.Query[string](c, "has_animations")),
			HasTypography:    middleware.ParseBoolParam(fiber.Query[string](c, "has_typography")),
			HasSoundDesign:   middleware.ParseBoolParam(fiber.Query[string](c, "has_sound_design")),
			HasTutorial:      middleware.ParseBoolParam(fiber.Query[string](c, "has_tutorial")),
		},
	}

	if id, errMsg := middleware.ParseID(fiber.Query[string](c, "id")); errMsg == "" {
		params.Filters.ID = &id
	}
	if sourceURL := fiber.Query[string](c, "source_url"); sourceURL != "" {
		params.Filters.SourceURL = &sourceURL
	}

	page, err := h.search.Search(c.Context(), params)
	if err != nil {
		return respondError(c, err, "", "Failed to search videos")
	}

	sortLabel := params.SortBy
	if sortLabel == "" {
		sortLabel = "default"
	}
	Metrics.SearchesTotal.WithLabelValues(sortLabel).Inc()

	return c.JSON(page)
}

// Get handles GET /api/videos/:id
func (h *VideoHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	video, err := h.svc.Lookup(c.Context(), id)
	if err != nil {
		return respondError(c, err, "Video reference not found", "Failed to fetch video reference")
	}
	return c.JSON(video)
}

// Create handles POST /api/videos
func (h *VideoHandler) Create(c fiber.Ctx) error {
	var in service.VideoInput
	if err := c.Bind().JSON(&in); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	video, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "Related record not found", "Failed to create video reference")
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// Update handles PUT /api/videos/:id
func (h *VideoHandler) Update(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var in service.VideoInput
	if err := c.Bind().JSON(&in); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	video, err := h.svc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, "Video reference not found", "Failed to update video reference")
	}
	return c.JSON(video)
}

// Delete handles DELETE /api/videos/:id
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, "Video reference not found", "Failed to delete video reference")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AttachTag handles POST /api/videos/:id/tags/:tagId
func (h *VideoHandler) AttachTag(c fiber.Ctx) error {
	videoID, tagID, errMsg := parseIDPair(c, "id", "tagId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.AttachTag(c.Context(), videoID, tagID); err != nil {
		return respondError(c, err, "Video reference or tag not found", "Failed to attach tag")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DetachTag handles DELETE /api/videos/:id/tags/:tagId
func (h *VideoHandler) DetachTag(c fiber.Ctx) error {
	videoID, tagID, errMsg := parseIDPair(c, "id", "tagId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DetachTag(c.Context(), videoID, tagID); err != nil {
		return respondError(c, err, "Tag is not attached to this video", "Failed to detach tag")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AttachCategory handles POST /api/videos/:id/categories/:categoryId
func (h *VideoHandler) AttachCategory(c fiber.Ctx) error {
	videoID, categoryID, errMsg := parseIDPair(c, "id", "categoryId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.AttachCategory(c.Context(), videoID, categoryID); err != nil {
		return respondError(c, err, "Video reference or category not found", "Failed to attach category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DetachCategory handles DELETE /api/videos/:id/categories/:categoryId
func (h *VideoHandler) DetachCategory(c fiber.Ctx) error {
	videoID, categoryID, errMsg := parseIDPair(c, "id", "categoryId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DetachCategory(c.Context(), videoID, categoryID); err != nil {
		return respondError(c, err, "Category is not attached to this video", "Failed to detach category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseIDPair(c fiber.Ctx, first, second string) (int64, int64, string) {
	a, errMsg := middleware.ParseID(c.Params(first))
	if errMsg != "" {
		return 0, 0, errMsg
	}
	b, errMsg := middleware.ParseID(c.Params(second))
	if errMsg != "" {
		return 0, 0, errMsg
	}
	return a, b, ""
}
