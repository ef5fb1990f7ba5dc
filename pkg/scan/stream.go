package scan

import (
	"context"
	"image"
)

type (
	// FrameSource is a capture device handle. NextFrame blocks until a
	// frame is available, the context is cancelled, or the device fails.
	// Close releases the underlying hardware resource.
	FrameSource interface {
		NextFrame(ctx context.Context) (image.Image, error)
		Close() error
	}

	// DecodeEvent is one decode attempt from a running camera stream:
	// either barcode text, domain.ErrNoBarcodeFound for a frame with no
	// code in view, or a device error. Terminal marks a capture failure
	// after which the stream produces nothing further.
	DecodeEvent struct {
		Text     string
		Err      error
		Terminal bool
	}

	// CameraStream decodes frames continuously until stopped. Stopping is
	// a single explicit action: it cancels the loop, waits for it to
	// finish and closes the frame source, so no capture handle leaks
	// across session resets.
	CameraStream struct {
		cancel context.CancelFunc
		events chan DecodeEvent
		done   chan struct{}
	}
)

func OpenCameraStream(ctx context.Context, source FrameSource, decoder Decoder) *CameraStream {
	ctx, cancel := context.WithCancel(ctx)
	stream := &CameraStream{
		cancel: cancel,
		events: make(chan DecodeEvent),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(stream.done)
		defer close(stream.events)
		defer source.Close()

		for {
			frame, err := source.NextFrame(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				select {
				case stream.events <- DecodeEvent{Err: err, Terminal: true}:
				case <-ctx.Done():
				}
				return
			}

			text, err := decoder.DecodeImage(frame)
			select {
			case stream.events <- DecodeEvent{Text: text, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return stream
}

func (s *CameraStream) Events() <-chan DecodeEvent {
	return s.events
}

func (s *CameraStream) Stop() {
	s.cancel()
	<-s.done
}
