package scan

import (
	"StockScan-Backend/domain"
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"
)

// scriptedFrames serves a fixed number of frames, then blocks until the
// stream context is cancelled.
type scriptedFrames struct {
	mu     sync.Mutex
	frames int
	err    error
	closed bool
}

func (s *scriptedFrames) NextFrame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	remaining := s.frames
	failure := s.err
	s.frames--
	s.mu.Unlock()

	if remaining <= 0 {
		if failure != nil {
			return nil, failure
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return image.NewGray(image.Rect(0, 0, 1, 1)), nil
}

func (s *scriptedFrames) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *scriptedFrames) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// flakyDecoder fails a number of frames before producing text, the shape
// of a real camera hunting for focus.
type flakyDecoder struct {
	mu       sync.Mutex
	failures int
	text     string
}

func (d *flakyDecoder) DecodeImage(_ image.Image) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failures > 0 {
		d.failures--
		return "", domain.ErrNoBarcodeFound
	}
	return d.text, nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestCameraStreamSkipsUnreadableFrames(t *testing.T) {
	inventory := &fakeInventory{byBarcode: map[string]*domain.ProductResponse{
		"123": {ID: "p1", Name: "Cola", Barcode: "123", Quantity: 4},
	}}
	ledger := &fakeLedger{inventory: inventory}
	session := NewSession("u1", inventory, ledger, &flakyDecoder{failures: 3, text: "123"})
	if err := session.SetMode(domain.ScanModeSale); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	source := &scriptedFrames{frames: 10}
	session.StartCamera(context.Background(), source)

	waitFor(t, "decode outcome", func() bool {
		return session.Snapshot().LastOutcome != nil
	})

	snapshot := session.Snapshot()
	if snapshot.LastOutcome.Status != domain.ScanOutcomeSold {
		t.Fatalf("status = %s, want sold", snapshot.LastOutcome.Status)
	}
	if snapshot.InputState != "idle" {
		t.Fatalf("state = %s, want idle after a successful decode", snapshot.InputState)
	}
	if inventory.byBarcode["123"].Quantity != 3 {
		t.Fatalf("stock = %d, want exactly one unit sold", inventory.byBarcode["123"].Quantity)
	}

	waitFor(t, "source release", source.isClosed)
}

func TestCameraStreamDeviceFailureAbortsToIdle(t *testing.T) {
	inventory := &fakeInventory{byBarcode: map[string]*domain.ProductResponse{}}
	ledger := &fakeLedger{inventory: inventory}
	session := NewSession("u1", inventory, ledger, &flakyDecoder{failures: 0, text: "123"})

	deviceErr := errors.New("capture device disconnected")
	source := &scriptedFrames{frames: 0, err: deviceErr}
	session.StartCamera(context.Background(), source)

	waitFor(t, "device failure surfaced", func() bool {
		return session.Snapshot().LastError != ""
	})

	snapshot := session.Snapshot()
	if snapshot.InputState != "idle" {
		t.Fatalf("state = %s, want idle after device failure", snapshot.InputState)
	}
	if snapshot.LastError != deviceErr.Error() {
		t.Fatalf("last error = %q", snapshot.LastError)
	}
	waitFor(t, "source release", source.isClosed)
}

func TestStopScanReleasesSource(t *testing.T) {
	inventory := &fakeInventory{byBarcode: map[string]*domain.ProductResponse{}}
	ledger := &fakeLedger{inventory: inventory}
	// Decoder that never succeeds keeps the stream running until stopped.
	session := NewSession("u1", inventory, ledger, &textDecoder{})

	source := &scriptedFrames{frames: 1 << 20}
	session.StartCamera(context.Background(), source)

	if state := session.Snapshot().InputState; state != "camera" {
		t.Fatalf("state = %s, want camera", state)
	}

	session.StopScan()

	if state := session.Snapshot().InputState; state != "idle" {
		t.Fatalf("state = %s, want idle after stop", state)
	}
	waitFor(t, "source release", source.isClosed)
}

func TestStartCameraReplacesPreviousStream(t *testing.T) {
	inventory := &fakeInventory{byBarcode: map[string]*domain.ProductResponse{}}
	ledger := &fakeLedger{inventory: inventory}
	session := NewSession("u1", inventory, ledger, &textDecoder{})

	first := &scriptedFrames{frames: 1 << 20}
	second := &scriptedFrames{frames: 1 << 20}

	session.StartCamera(context.Background(), first)
	session.StartCamera(context.Background(), second)

	waitFor(t, "first source release", first.isClosed)
	if second.isClosed() {
		t.Fatalf("active source was closed")
	}
	session.StopScan()
	waitFor(t, "second source release", second.isClosed)
}