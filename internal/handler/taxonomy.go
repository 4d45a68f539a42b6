package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/refstash/refstash-go/internal/middleware"
	"github.com/refstash/refstash-go/internal/service"
)

// TaxonomyHandler serves tags, hooks and transition types.
type TaxonomyHandler struct {
	svc *service.TaxonomyService
}

func NewTaxonomyHandler(svc *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{svc: svc}
}

type nameRequest struct {
	Name string `json:"name"`
}

// ListTags handles GET /api/tags
func (h *TaxonomyHandler) ListTags(c fiber.Ctx) error {
	tags, err := h.svc.ListTags(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch tags")
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (h *TaxonomyHandler) GetTag(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	tag, err := h.svc.GetTag(c.Context(), id)
	if err != nil {
		return respondError(c, err, "Tag not found", "Failed to fetch tag")
	}
	return c.JSON(tag)
}

// CreateTag handles POST /api/tags
func (h *TaxonomyHandler) CreateTag(c fiber.Ctx) error {
	var req nameRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	tag, err := h.svc.CreateTag(c.Context(), req.Name)
	if err != nil {
		return respondError(c, err, "", "Failed to create tag")
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// RenameTag handles PUT /api/tags/:id
func (h *TaxonomyHandler) RenameTag(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}
	var req nameRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	tag, err := h.svc.RenameTag(c.Context(), id, req.Name)
	if err != nil {
		return respondError(c, err, "Tag not found", "Failed to rename tag")
	}
	return c.JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id
func (h *TaxonomyHandler) DeleteTag(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DeleteTag(c.Context(), id); err != nil {
		return respondError(c, err, "Tag not found", "Failed to delete tag")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MergeTags handles POST /api/tags/:id/merge/:targetId
func (h *TaxonomyHandler) MergeTags(c fiber.Ctx) error {
	fromID, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}
	toID, errMsg := middleware.ParseID(c.Params("targetId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	moved, err := h.svc.MergeTags(c.Context(), fromID, toID)
	if err != nil {
		return respondError(c, err, "Tag not found", "Failed to merge tags")
	}
	return c.JSON(fiber.Map{"moved": moved})
}

// ListHooks handles GET /api/hooks
func (h *TaxonomyHandler) ListHooks(c fiber.Ctx) error {
	hooks, err := h.svc.ListHooks(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch hooks")
	}
	return c.JSON(hooks)
}

// ListTransitionTypes handles GET /api/transition-types
func (h *TaxonomyHandler) ListTransitionTypes(c fiber.Ctx) error {
	types, err := h.svc.ListTransitionTypes(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch transition types")
	}
	return c.JSON(types)
}

// CreateTransitionType handles POST /api/transition-types
func (h *TaxonomyHandler) CreateTransitionType(c fiber.Ctx) error {
	var req nameRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	tt, err := h.svc.CreateTransitionType(c.Context(), req.Name)
	if err != nil {
		return respondError(c, err, "", "Failed to create transition type")
	}
	return c.Status(fiber.StatusCreated).JSON(tt)
}

// RenameTransitionType handles PUT /api/transition-types/:id
func (h *TaxonomyHandler) RenameTransitionType(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}
	var req nameRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	tt, err := h.svc.RenameTransitionType(c.Context(), id, req.Name)
	if err != nil {
		return respondError(c, err, "Transition type not found", "Failed to rename transition type")
	}
	return c.JSON(tt)
}

// DeleteTransitionType handles DELETE /api/transition-types/:id
func (h *TaxonomyHandler) DeleteTransitionType(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DeleteTransitionType(c.Context(), id); err != nil {
		return respondError(c, err, "Transition type not found", "Failed to delete transition type")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
