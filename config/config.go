// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"kyc-verification-workflow/shared"
)

// Camera modes for local development.
const (
	CameraModeStub        = "stub"
	CameraModeDenied      = "denied"
	CameraModeUnavailable = "unavailable"
)

// Config holds everything the binaries need to start.
type Config struct {
	// TemporalHostPort is the Temporal frontend address. Empty means the
	// SDK default (localhost:7233).
	TemporalHostPort string

	// KYCServiceURL is the base URL of the extraction/verification service.
	KYCServiceURL string

	// MetricsAddr is the listen address for the Prometheus endpoint.
	MetricsAddr string

	// HTTPTimeout bounds each call to the KYC service.
	HTTPTimeout time.Duration

	// Policy maps verification scores to session statuses.
	Policy shared.ClassificationPolicy

	// CameraMode selects the stub camera behavior for the CLI.
	CameraMode string

	// AllowUnextractedSkip lets applicants pass the document step without
	// a successful extraction.
	AllowUnextractedSkip bool

	// OTELEnabled turns on OpenTelemetry spans for activity calls.
	OTELEnabled bool
}

// FromEnv builds a Config from environment variables, falling back to
// local-development defaults.
func FromEnv() Config {
	return Config{
		TemporalHostPort: os.Getenv("TEMPORAL_HOST_PORT"),
		KYCServiceURL:    getEnv("KYC_SERVICE_URL", "http://localhost:8000"),
		MetricsAddr:      getEnv("METRICS_ADDR", ":9090"),
		HTTPTimeout:      getDuration("KYC_HTTP_TIMEOUT", 30*time.Second),
		Policy: shared.ClassificationPolicy{
			AcceptScore:  getFloat("ACCEPT_SCORE", 90),
			ObserveScore: getFloat("OBSERVE_SCORE", 75),
			ReviewScore:  getFloat("REVIEW_SCORE", 50),
			FlagScore:    getFloat("FLAG_SCORE", 25),
		},
		CameraMode:           getEnv("CAMERA_MODE", CameraModeStub),
		AllowUnextractedSkip: getBool("ALLOW_UNEXTRACTED_SKIP", false),
		OTELEnabled:          getBool("OTEL_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
