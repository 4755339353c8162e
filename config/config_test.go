package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "http://localhost:8000", cfg.KYCServiceURL)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, CameraModeStub, cfg.CameraMode)
	assert.False(t, cfg.AllowUnextractedSkip)

	assert.InDelta(t, 90, cfg.Policy.AcceptScore, 0.001)
	assert.InDelta(t, 75, cfg.Policy.ObserveScore, 0.001)
	assert.InDelta(t, 50, cfg.Policy.ReviewScore, 0.001)
	assert.InDelta(t, 25, cfg.Policy.FlagScore, 0.001)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("KYC_SERVICE_URL", "http://kyc.internal:9000")
	t.Setenv("KYC_HTTP_TIMEOUT", "5s")
	t.Setenv("ACCEPT_SCORE", "95.5")
	t.Setenv("ALLOW_UNEXTRACTED_SKIP", "true")
	t.Setenv("CAMERA_MODE", CameraModeDenied)

	cfg := FromEnv()
	assert.Equal(t, "http://kyc.internal:9000", cfg.KYCServiceURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.InDelta(t, 95.5, cfg.Policy.AcceptScore, 0.001)
	assert.True(t, cfg.AllowUnextractedSkip)
	assert.Equal(t, CameraModeDenied, cfg.CameraMode)
}

func TestFromEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("KYC_HTTP_TIMEOUT", "soon")
	t.Setenv("ACCEPT_SCORE", "high")
	t.Setenv("ALLOW_UNEXTRACTED_SKIP", "yep")

	cfg := FromEnv()
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.InDelta(t, 90, cfg.Policy.AcceptScore, 0.001)
	assert.False(t, cfg.AllowUnextractedSkip)
}
