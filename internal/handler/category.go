package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/refstash/refstash-go/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Tree handles GET /api/categories
func (h *CategoryHandler) Tree(c fiber.Ctx) error {
	tree, err := h.svc.Tree(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to fetch categories")
	}
	return c.JSON(tree)
}
