package camera

import (
	"context"
	"sync"
)

// defaultFramePNG is a 1x1 transparent PNG.
var defaultFramePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// StubDevice is a Device for development and tests. It can simulate
// permission denial and missing hardware.
type StubDevice struct {
	DenyPermission bool
	Unavailable    bool
	// FramePNG overrides the frame returned by streams. Defaults to a
	// 1x1 transparent PNG.
	FramePNG []byte
}

func (d *StubDevice) Open(_ context.Context, _ Constraints) (Stream, error) {
	if d.DenyPermission {
		return nil, ErrPermissionDenied
	}
	if d.Unavailable {
		return nil, ErrDeviceUnavailable
	}
	frame := d.FramePNG
	if frame == nil {
		frame = defaultFramePNG
	}
	return &StubStream{frame: frame}, nil
}

// StubStream records whether it was closed so tests can assert the
// controller released the device.
type StubStream struct {
	mu     sync.Mutex
	frame  []byte
	closed bool
}

func (s *StubStream) Frame() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNotStreaming
	}
	return s.frame, nil
}

func (s *StubStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *StubStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
