package shared

import "time"

// Task queue names.
const (
	VerificationWorkflowTaskQueue = "kyc-verification-wf-tq"
	ActivityTaskQueue             = "kyc-activity-tq"
)

// Signal names. Every user action in the wizard arrives as a signal.
const (
	SignalAdvance          = "signal-advance"
	SignalRetreat          = "signal-retreat"
	SignalUpdateFields     = "signal-update-fields"
	SignalRequestOTP       = "signal-request-otp"
	SignalSubmitOTP        = "signal-submit-otp"
	SignalDocumentUploaded = "signal-document-uploaded"
	SignalSelfieCaptured   = "signal-selfie-captured"
	SignalSubmit           = "signal-submit"
	SignalReturnToFlow     = "signal-return-to-flow"
	SignalEndSession       = "signal-end-session"
)

// Query names.
const (
	QueryState       = "query-state"
	QueryCurrentStep = "query-current-step"
)

// OTP challenge constants.
const (
	OTPCodeLength  = 6
	OTPMaxAttempts = 5
	MinPhoneDigits = 10
)

// SessionTimeout bounds the life of a single verification session. A session
// that is neither submitted nor explicitly ended is abandoned after this.
const SessionTimeout = 24 * time.Hour

// Error types for non-retryable activity failures.
const (
	ErrTypeExtractionFailed    = "ExtractionFailed"
	ErrTypeUnsupportedDocument = "UnsupportedDocument"
	ErrTypeVerificationFailed  = "VerificationFailed"
)
