package scan

import (
	"StockScan-Backend/domain"
	"context"
	"errors"
	"image"
	"sync"
	"time"
)

// Capacity of the recent-activity log; older entries are dropped.
const activityLimit = 10

type (
	InputState int

	OperatorMode int

	// Inventory is the slice of the product service the scan pipeline
	// needs: owner-scoped barcode matching and restocking.
	Inventory interface {
		FindByBarcode(ctx context.Context, barcode string, userID string) (*domain.ProductResponse, error)
		Restock(ctx context.Context, id string, delta int, userID string) (domain.ProductResponse, error)
	}

	// Ledger records a sale: stock decrement plus ledger append, or
	// domain.ErrInsufficientStock with no mutation at all.
	Ledger interface {
		RecordSale(ctx context.Context, req domain.RecordSaleRequest, userID string) (domain.SaleResponse, error)
	}

	// Session is the scan state machine for a single owner. One decoded
	// barcode finishes its full match-mutate-log cycle before the next
	// one is accepted; decodes arriving mid-dispatch are dropped.
	Session struct {
		userID    string
		inventory Inventory
		ledger    Ledger
		decoder   Decoder

		mu       sync.Mutex
		state    InputState
		mode     OperatorMode
		busy     bool
		outcome  *domain.ScanOutcomeResponse
		activity []domain.ScanActivityResponse
		lastErr  error
		stream   *CameraStream
	}
)

const (
	StateIdle InputState = iota
	StateCameraActive
	StateUploadActive
)

const (
	ModeRestock OperatorMode = iota
	ModeSale
)

func (s InputState) String() string {
	switch s {
	case StateCameraActive:
		return "camera"
	case StateUploadActive:
		return "upload"
	default:
		return "idle"
	}
}

func (m OperatorMode) String() string {
	if m == ModeSale {
		return domain.ScanModeSale
	}
	return domain.ScanModeRestock
}

func NewSession(userID string, inventory Inventory, ledger Ledger, decoder Decoder) *Session {
	return &Session{
		userID:    userID,
		inventory: inventory,
		ledger:    ledger,
		decoder:   decoder,
	}
}

func (s *Session) SetMode(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case domain.ScanModeRestock:
		s.mode = ModeRestock
	case domain.ScanModeSale:
		s.mode = ModeSale
	default:
		return domain.ErrInvalidScanMode
	}
	return nil
}

// StartCamera opens a continuous decode subscription over the given
// frame source. Any previously active input surface is stopped first.
func (s *Session) StartCamera(ctx context.Context, source FrameSource) {
	s.stopStream()

	stream := OpenCameraStream(ctx, source, s.decoder)

	s.mu.Lock()
	s.state = StateCameraActive
	s.lastErr = nil
	s.stream = stream
	s.mu.Unlock()

	go s.watch(ctx, stream)
}

func (s *Session) watch(ctx context.Context, stream *CameraStream) {
	for event := range stream.Events() {
		if event.Err != nil {
			if event.Terminal {
				// Device failure aborts the scan session.
				s.mu.Lock()
				s.lastErr = event.Err
				s.state = StateIdle
				s.stream = nil
				s.mu.Unlock()
				return
			}
			// Frames with nothing readable in view are part of normal
			// continuous scanning and never surface.
			continue
		}

		s.HandleDecode(ctx, event.Text)
		s.stopStream()
		return
	}
}

// StopScan returns the session to Idle and releases any capture handle.
func (s *Session) StopScan() {
	s.stopStream()

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *Session) stopStream() {
	s.mu.Lock()
	stream := s.stream
	s.stream = nil
	s.mu.Unlock()

	if stream != nil {
		stream.Stop()
	}
}

// SubmitImage runs a one-shot decode over an uploaded image and
// dispatches the result. An image without a readable barcode is a real
// failure here, unlike the camera's quiet frames.
func (s *Session) SubmitImage(ctx context.Context, img image.Image) (*domain.ScanOutcomeResponse, error) {
	s.stopStream()

	s.mu.Lock()
	s.state = StateUploadActive
	s.mu.Unlock()

	text, err := s.decoder.DecodeImage(img)

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.HandleDecode(ctx, text)
}

// HandleDecode dispatches one decoded barcode through the pipeline:
// deactivate the input surface, match, then branch on operator mode.
// It returns (nil, nil) when a decode arrives while another one is
// still being dispatched.
func (s *Session) HandleDecode(ctx context.Context, barcode string) (*domain.ScanOutcomeResponse, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, nil
	}
	s.busy = true
	s.state = StateIdle
	mode := s.mode
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	matched, err := s.inventory.FindByBarcode(ctx, barcode, s.userID)
	if err != nil {
		return nil, err
	}

	if matched == nil {
		outcome := &domain.ScanOutcomeResponse{Barcode: barcode}
		if mode == ModeRestock {
			outcome.Status = domain.ScanOutcomeCreateRequired
		} else {
			outcome.Status = domain.ScanOutcomeNotFound
		}
		s.setOutcome(outcome)
		return outcome, nil
	}

	switch mode {
	case ModeRestock:
		updated, err := s.inventory.Restock(ctx, matched.ID, 1, s.userID)
		if err != nil {
			return nil, err
		}
		outcome := &domain.ScanOutcomeResponse{
			Status:           domain.ScanOutcomeAdded,
			Barcode:          barcode,
			Product:          &updated,
			PreviousQuantity: matched.Quantity,
			NewQuantity:      updated.Quantity,
		}
		s.logActivity(domain.ScanOutcomeAdded, matched.Name, 1)
		s.setOutcome(outcome)
		return outcome, nil

	default:
		_, err := s.ledger.RecordSale(ctx, domain.RecordSaleRequest{ProductID: matched.ID, Quantity: 1}, s.userID)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				outcome := &domain.ScanOutcomeResponse{
					Status:           domain.ScanOutcomeOutOfStock,
					Barcode:          barcode,
					Product:          matched,
					PreviousQuantity: matched.Quantity,
					NewQuantity:      matched.Quantity,
				}
				s.setOutcome(outcome)
				return outcome, nil
			}
			return nil, err
		}
		sold := *matched
		sold.Quantity = matched.Quantity - 1
		outcome := &domain.ScanOutcomeResponse{
			Status:           domain.ScanOutcomeSold,
			Barcode:          barcode,
			Product:          &sold,
			PreviousQuantity: matched.Quantity,
			NewQuantity:      sold.Quantity,
		}
		s.logActivity(domain.ScanOutcomeSold, matched.Name, 1)
		s.setOutcome(outcome)
		return outcome, nil
	}
}

func (s *Session) setOutcome(outcome *domain.ScanOutcomeResponse) {
	s.mu.Lock()
	s.outcome = outcome
	s.mu.Unlock()
}

func (s *Session) logActivity(activityType string, productName string, quantity int) {
	entry := domain.ScanActivityResponse{
		Type:      activityType,
		Product:   productName,
		Quantity:  quantity,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.activity = append([]domain.ScanActivityResponse{entry}, s.activity...)
	if len(s.activity) > activityLimit {
		s.activity = s.activity[:activityLimit]
	}
	s.mu.Unlock()
}

func (s *Session) Snapshot() domain.ScanSessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	response := domain.ScanSessionResponse{
		Mode:       s.mode.String(),
		InputState: s.state.String(),
		Activity:   append([]domain.ScanActivityResponse(nil), s.activity...),
	}
	if s.outcome != nil {
		outcome := *s.outcome
		response.LastOutcome = &outcome
	}
	if s.lastErr != nil {
		response.LastError = s.lastErr.Error()
	}
	return response
}
