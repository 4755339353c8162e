package shared

import "errors"

// ErrorCode categorizes step-scoped failures in business terms. Every code is
// recoverable: the session stays on the same step and the user may retry.
type ErrorCode string

const (
	ErrCodePrecondition       ErrorCode = "precondition"
	ErrCodePermissionDenied   ErrorCode = "permission_denied"
	ErrCodeDeviceUnavailable  ErrorCode = "device_unavailable"
	ErrCodeNoChallenge        ErrorCode = "no_challenge"
	ErrCodeOTPMismatch        ErrorCode = "otp_mismatch"
	ErrCodeOTPLocked          ErrorCode = "otp_locked"
	ErrCodeOTPDelivery        ErrorCode = "otp_delivery_failed"
	ErrCodeUnsupportedKind    ErrorCode = "unsupported_document"
	ErrCodeExtractionFailed   ErrorCode = "extraction_failed"
	ErrCodeVerificationFailed ErrorCode = "verification_failed"
	ErrCodeIncompleteDossier  ErrorCode = "incomplete_dossier"
)

// Error wraps a business failure with a stable code. It is transport-agnostic
// and comparable by code via errors.Is.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by code so callers can write errors.Is(err, &Error{Code: c}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a coded error with a user-visible message.
func NewError(code ErrorCode, msg string) error {
	return &Error{Code: code, Message: msg}
}

// CodeOf extracts the code from an error chain, or "" when none is present.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StepError is the serializable form of a step-scoped error, surfaced through
// the state query so clients can render the reason.
type StepError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
