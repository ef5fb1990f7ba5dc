package handlers

import (
	"StockScan-Backend/domain"
	"StockScan-Backend/internal/api/presenters"
	"StockScan-Backend/pkg/sales"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SalesHandler interface {
		RecordSale(c *fiber.Ctx) error
		GetSales(c *fiber.Ctx) error
	}

	salesHandler struct {
		salesService sales.SalesService
		validator    *validator.Validate
	}
)

func NewSalesHandler(salesService sales.SalesService, validator *validator.Validate) SalesHandler {
	return &salesHandler{
		salesService: salesService,
		validator:    validator,
	}
}

func (h *salesHandler) RecordSale(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RecordSaleRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordSale, err)
	}

	res, err := h.salesService.RecordSale(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRecordSale, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordSale)
}

func (h *salesHandler) GetSales(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.salesService.GetSales(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSales, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSales)
}
