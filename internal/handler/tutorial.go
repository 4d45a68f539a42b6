package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/refstash/refstash-go/internal/middleware"
	"github.com/refstash/refstash-go/internal/model"
	"github.com/refstash/refstash-go/internal/service"
)

type TutorialHandler struct {
	svc *service.TutorialService
}

func NewTutorialHandler(svc *service.TutorialService) *TutorialHandler {
	return &TutorialHandler{svc: svc}
}

// List handles GET /api/videos/:id/tutorials
func (h *TutorialHandler) List(c fiber.Ctx) error {
	videoID, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	tutorials, err := h.svc.ListForVideo(c.Context(), videoID)
	if err != nil {
		return respondError(c, err, "Video reference not found", "Failed to fetch tutorials")
	}
	return c.JSON(tutorials)
}

// Create handles POST /api/videos/:id/tutorials
func (h *TutorialHandler) Create(c fiber.Ctx) error {
	videoID, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var t model.Tutorial
	if err := c.Bind().JSON(&t); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	created, err := h.svc.Create(c.Context(), videoID, &t)
	if err != nil {
		return respondError(c, err, "Video reference not found", "Failed to create tutorial")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Delete handles DELETE /api/videos/:id/tutorials/:tutorialId
func (h *TutorialHandler) Delete(c fiber.Ctx) error {
	videoID, tutorialID, errMsg := parseIDPair(c, "id", "tutorialId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.Delete(c.Context(), videoID, tutorialID); err != nil {
		return respondError(c, err, "Tutorial not found", "Failed to delete tutorial")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
