package camera

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_CaptureLifecycle(t *testing.T) {
	c := NewController(&StubDevice{})
	assert.Equal(t, StateIdle, c.State())

	require.NoError(t, c.RequestStream(context.Background()))
	assert.Equal(t, StateStreaming, c.State())

	frame, err := c.CaptureFrame()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(frame, "data:image/png;base64,"))
	assert.Equal(t, StateCaptured, c.State())
	assert.Equal(t, frame, c.CapturedFrame())

	require.NoError(t, c.Stop())
	assert.Equal(t, StateStopped, c.State())
	// The captured frame survives releasing the device.
	assert.Equal(t, frame, c.CapturedFrame())
}

func TestController_PermissionDenied(t *testing.T) {
	c := NewController(&StubDevice{DenyPermission: true})

	err := c.RequestStream(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, StateIdle, c.State(), "a denied request leaves the controller idle")

	_, err = c.CaptureFrame()
	assert.ErrorIs(t, err, ErrNotStreaming)
}

func TestController_DeviceUnavailable(t *testing.T) {
	c := NewController(&StubDevice{Unavailable: true})

	err := c.RequestStream(context.Background())
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.Equal(t, StateIdle, c.State())
}

func TestController_RetakeReusesStream(t *testing.T) {
	device := &StubDevice{}
	c := NewController(device)

	require.NoError(t, c.RequestStream(context.Background()))
	first, err := c.CaptureFrame()
	require.NoError(t, err)

	// Requesting again while captured flips back to streaming on the same
	// stream instead of reopening the device.
	require.NoError(t, c.RequestStream(context.Background()))
	assert.Equal(t, StateStreaming, c.State())

	second, err := c.CaptureFrame()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestController_StopIsIdempotent(t *testing.T) {
	c := NewController(&StubDevice{})
	require.NoError(t, c.RequestStream(context.Background()))

	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
	assert.Equal(t, StateStopped, c.State())

	// Stop before any request is also fine.
	fresh := NewController(&StubDevice{})
	require.NoError(t, fresh.Stop())
}

func TestController_StopClosesStream(t *testing.T) {
	c := NewController(&StubDevice{})
	require.NoError(t, c.RequestStream(context.Background()))

	stream, ok := c.stream.(*StubStream)
	require.True(t, ok)

	require.NoError(t, c.Stop())
	assert.True(t, stream.Closed(), "stop must release the device tracks")
	assert.Nil(t, c.stream)
}

func TestController_CaptureWithoutStream(t *testing.T) {
	c := NewController(&StubDevice{})
	_, err := c.CaptureFrame()
	assert.ErrorIs(t, err, ErrNotStreaming)

	require.NoError(t, c.RequestStream(context.Background()))
	require.NoError(t, c.Stop())
	_, err = c.CaptureFrame()
	assert.ErrorIs(t, err, ErrNotStreaming)
}
