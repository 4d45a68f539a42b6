package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/refstash/refstash-go/internal/middleware"
	"github.com/refstash/refstash-go/internal/service"
)

type CollectionHandler struct {
	svc *service.CollectionService
}

func NewCollectionHandler(svc *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

// List handles GET /api/collections
func (h *CollectionHandler) List(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Get("X-User-ID"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER", errMsg)
	}

	collections, err := h.svc.ListForUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch collections")
	}
	return c.JSON(collections)
}

// Create handles POST /api/collections
func (h *CollectionHandler) Create(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Get("X-User-ID"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER", errMsg)
	}

	var req struct {
		Name      string `json:"name"`
		IsDefault bool   `json:"is_default"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	collection, err := h.svc.Create(c.Context(), userID, req.Name, req.IsDefault)
	if err != nil {
		return respondError(c, err, "", "Failed to create collection")
	}
	return c.Status(fiber.StatusCreated).JSON(collection)
}

// AddItem handles POST /api/collections/:id/videos/:videoId
func (h *CollectionHandler) AddItem(c fiber.Ctx) error {
	collectionID, videoID, errMsg := parseIDPair(c, "id", "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.AddItem(c.Context(), collectionID, videoID); err != nil {
		return respondError(c, err, "Collection or video not found", "Failed to add video to collection")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveItem handles DELETE /api/collections/:id/videos/:videoId
func (h *CollectionHandler) RemoveItem(c fiber.Ctx) error {
	collectionID, videoID, errMsg := parseIDPair(c, "id", "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.RemoveItem(c.Context(), collectionID, videoID); err != nil {
		return respondError(c, err, "Video is not in this collection", "Failed to remove video from collection")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Shared handles GET /api/shared/:token
func (h *CollectionHandler) Shared(c fiber.Ctx) error {
	token, errMsg := middleware.ValidateShareToken(c.Params("token"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_TOKEN", errMsg)
	}

	collection, err := h.svc.SharedView(c.Context(), token)
	if err != nil {
		return respondError(c, err, "Shared collection not found", "Failed to fetch shared collection")
	}
	return c.JSON(collection)
}
