package handlers

import (
	"StockScan-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrDemoWriteForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateBarcode):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
