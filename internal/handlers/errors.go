package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

// StatusForError maps service errors onto HTTP status codes.
func StatusForError(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, repositories.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrScreeningInProgress):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrQueueFull), errors.Is(err, services.ErrWorkerStopped):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrFetchFailure),
		errors.Is(err, services.ErrAnalysisFailure),
		errors.Is(err, services.ErrGenerationFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(StatusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// ErrorHandler is the fiber error handler for errors returned by routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusForError(err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
