package activities

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"

	"kyc-verification-workflow/shared"
	"kyc-verification-workflow/tracer"
)

// DeliverOTP hands the one-time code to the configured sender and returns
// a delivery id. Without a configured sender the code is logged, which is
// enough for local development.
func (a *Activities) DeliverOTP(ctx context.Context, d shared.OTPDelivery) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Delivering one-time code", "session_id", d.SessionID)

	ctx, span := a.tracerOrNoop().Start(ctx, tracer.SpanOTPDeliver,
		tracer.String(tracer.AttrPhoneHash, tracer.HashPII(d.Phone)),
	)
	err := a.sender().Send(ctx, d)
	span.End(err)
	a.Metrics.CountOTPDelivery(err)
	if err != nil {
		return "", fmt.Errorf("delivering one-time code: %w", err)
	}
	return "OTP-" + d.SessionID, nil
}

func (a *Activities) sender() OTPSender {
	if a.Sender != nil {
		return a.Sender
	}
	return &LogSender{}
}
