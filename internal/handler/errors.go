package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/refstash/refstash-go/internal/middleware"
	"github.com/refstash/refstash-go/internal/service"
)

// respondError maps service errors onto the API error envelope. Validation
// failures carry their own message; everything else gets the caller's text so
// internals never leak.
func respondError(c fiber.Ctx, err error, notFoundMsg, internalMsg string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, pgx.ErrNoRows):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMsg)
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", internalMsg)
	}
}
