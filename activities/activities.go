// Package activities implements the external-call side of the verification
// workflow: document extraction, dossier verification and one-time code
// delivery. All HTTP calls go to the KYC service configured via BaseURL.
package activities

import (
	"context"
	"log/slog"
	"net/http"

	"kyc-verification-workflow/metrics"
	"kyc-verification-workflow/shared"
	"kyc-verification-workflow/tracer"
)

// OTPSender delivers a one-time code to the applicant's phone.
type OTPSender interface {
	Send(ctx context.Context, d shared.OTPDelivery) error
}

// LogSender writes the code to the log instead of sending it anywhere.
// Stands in for an SMS gateway in local development.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, d shared.OTPDelivery) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("delivering one-time code",
		"session_id", d.SessionID,
		"phone_hash", tracer.HashPII(d.Phone),
		"code", d.Code,
	)
	return nil
}

// Activities holds the dependencies for all activity implementations.
// Register one instance with the worker.
type Activities struct {
	HTTPClient *http.Client
	BaseURL    string
	Tracer     tracer.Tracer
	Metrics    *metrics.Metrics
	Sender     OTPSender
}

func (a *Activities) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a *Activities) tracerOrNoop() tracer.Tracer {
	if a.Tracer != nil {
		return a.Tracer
	}
	return tracer.NewNoop()
}
