// Package camera manages the selfie capture lifecycle on the client side.
// The Controller owns a single stream at a time and enforces the
// idle -> requesting -> streaming -> captured/stopped progression.
package camera

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
)

// State of the capture controller.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateStreaming  State = "streaming"
	StateCaptured   State = "captured"
	StateStopped    State = "stopped"
)

var (
	// ErrPermissionDenied means the user refused camera access.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrDeviceUnavailable means no usable camera device was found.
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	// ErrNotStreaming means a frame was requested without a live stream.
	ErrNotStreaming = errors.New("camera is not streaming")
)

// Constraints requested when opening a device.
type Constraints struct {
	FacingMode string
	Audio      bool
}

// DefaultConstraints asks for the front-facing camera, video only.
func DefaultConstraints() Constraints {
	return Constraints{FacingMode: "user", Audio: false}
}

// Stream is a live video stream.
type Stream interface {
	// Frame returns the current frame as PNG bytes.
	Frame() ([]byte, error)
	// Close releases the underlying device tracks.
	Close() error
}

// Device opens camera streams.
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Controller drives a Device through the capture lifecycle.
type Controller struct {
	mu     sync.Mutex
	device Device
	stream Stream
	state  State
	frame  string
}

// NewController creates a Controller in the idle state.
func NewController(device Device) *Controller {
	return &Controller{device: device, state: StateIdle}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CapturedFrame returns the last captured frame as a data URL, empty if
// nothing was captured.
func (c *Controller) CapturedFrame() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// RequestStream opens the device. If a stream is already live from an
// earlier request it is reused rather than reopened, and the state returns
// to streaming so another frame can be taken. On failure the controller
// stays idle and the error describes the denial.
func (c *Controller) RequestStream(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil && (c.state == StateStreaming || c.state == StateCaptured) {
		c.state = StateStreaming
		return nil
	}

	c.state = StateRequesting
	stream, err := c.device.Open(ctx, DefaultConstraints())
	if err != nil {
		c.state = StateIdle
		return err
	}
	c.stream = stream
	c.state = StateStreaming
	return nil
}

// CaptureFrame grabs the current frame and encodes it as a PNG data URL.
// The stream stays open so the applicant can retake.
func (c *Controller) CaptureFrame() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStreaming || c.stream == nil {
		return "", ErrNotStreaming
	}
	png, err := c.stream.Frame()
	if err != nil {
		return "", err
	}
	c.frame = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	c.state = StateCaptured
	return c.frame, nil
}

// Stop releases the stream. Safe to call repeatedly and in any state;
// the captured frame, if any, is kept.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.stream != nil {
		err = c.stream.Close()
		c.stream = nil
	}
	c.state = StateStopped
	return err
}
