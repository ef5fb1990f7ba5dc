package handlers

import (
	"image"
	_ "image/jpeg"
	_ "image/png"

	"StockScan-Backend/domain"
	"StockScan-Backend/internal/api/presenters"
	"StockScan-Backend/pkg/scan"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScanHandler interface {
		SetScanMode(c *fiber.Ctx) error
		ScanBarcode(c *fiber.Ctx) error
		UploadBarcodeImage(c *fiber.Ctx) error
		GetScanSession(c *fiber.Ctx) error
		ResetScanSession(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanManager *scan.Manager
		validator   *validator.Validate
	}
)

func NewScanHandler(scanManager *scan.Manager, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanManager: scanManager,
		validator:   validator,
	}
}

func (h *scanHandler) SetScanMode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetScanModeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetScanMode, err)
	}

	session := h.scanManager.Session(userID)
	if err := session.SetMode(req.Mode); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetScanMode, err)
	}

	return presenters.SuccessResponse(c, session.Snapshot(), fiber.StatusOK, domain.MessageSuccessSetScanMode)
}

// ScanBarcode dispatches a barcode the client already decoded, the path
// taken by browsers running their own camera pipeline.
func (h *scanHandler) ScanBarcode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ScanBarcodeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanBarcode, err)
	}

	session := h.scanManager.Session(userID)
	outcome, err := session.HandleDecode(c.Context(), req.Barcode)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedScanBarcode, err)
	}
	if outcome == nil {
		// Another decode is still being dispatched; this one is dropped.
		return presenters.SuccessResponse(c, session.Snapshot(), fiber.StatusOK, domain.MessageSuccessScanBarcode)
	}

	return presenters.SuccessResponse(c, outcome, fiber.StatusOK, domain.MessageSuccessScanBarcode)
}

func (h *scanHandler) UploadBarcodeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecodeImage, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecodeImage, err)
	}

	session := h.scanManager.Session(userID)
	outcome, err := session.SubmitImage(c.Context(), img)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDecodeImage, err)
	}

	return presenters.SuccessResponse(c, outcome, fiber.StatusOK, domain.MessageSuccessScanBarcode)
}

func (h *scanHandler) GetScanSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	session := h.scanManager.Session(userID)

	return presenters.SuccessResponse(c, session.Snapshot(), fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *scanHandler) ResetScanSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	h.scanManager.Reset(userID)

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetScan)
}
