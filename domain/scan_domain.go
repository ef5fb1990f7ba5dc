package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessScanBarcode = "barcode processed successfully"
	MessageSuccessSetScanMode = "scan mode updated"
	MessageSuccessGetSession  = "scan session retrieved"
	MessageSuccessResetScan   = "scan session reset"

	MessageFailedScanBarcode = "failed to process barcode"
	MessageFailedDecodeImage = "failed to decode barcode image"
	MessageFailedSetScanMode = "failed to update scan mode"

	ErrNoBarcodeFound  = errors.New("no barcode detected in the image")
	ErrInvalidScanMode = errors.New("invalid scan mode")
)

// Operator modes for the scan session.
const (
	ScanModeRestock = "restock"
	ScanModeSale    = "sale"
)

// Outcome statuses of a dispatched scan event.
const (
	ScanOutcomeAdded          = "added"
	ScanOutcomeSold           = "sold"
	ScanOutcomeOutOfStock     = "out_of_stock"
	ScanOutcomeNotFound       = "not_found"
	ScanOutcomeCreateRequired = "create_required"
)

type (
	SetScanModeRequest struct {
		Mode string `json:"mode" validate:"required,oneof=restock sale"`
	}

	ScanBarcodeRequest struct {
		Barcode string `json:"barcode" validate:"required"`
	}

	ScanOutcomeResponse struct {
		Status           string           `json:"status"`
		Barcode          string           `json:"barcode"`
		Product          *ProductResponse `json:"product,omitempty"`
		PreviousQuantity int              `json:"previous_quantity"`
		NewQuantity      int              `json:"new_quantity"`
	}

	ScanActivityResponse struct {
		Type      string    `json:"type"`
		Product   string    `json:"product"`
		Quantity  int       `json:"quantity"`
		Timestamp time.Time `json:"timestamp"`
	}

	ScanSessionResponse struct {
		Mode        string                 `json:"mode"`
		InputState  string                 `json:"input_state"`
		LastOutcome *ScanOutcomeResponse   `json:"last_outcome,omitempty"`
		Activity    []ScanActivityResponse `json:"activity"`
		LastError   string                 `json:"last_error,omitempty"`
	}
)
