// Package tracer is a small tracing abstraction for the external-call
// clients. Activity code emits spans through this interface instead of
// depending on OpenTelemetry directly; production wires the OTel adapter,
// tests use the no-op.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span tracks the execution of a single operation.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// Call exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }
func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }
func Int64(key string, value int64) Attribute { return Attribute{Key: key, Value: value} }
func Float64(key string, value float64) Attribute { return Attribute{Key: key, Value: value} }

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashPII returns a short SHA-256 digest so phone numbers and document ids
// can be correlated across traces without exposing the raw value.
func HashPII(v string) string {
	if v == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:8])
}

// Span names used by the activity clients.
const (
	SpanExtract    = "kyc.extract"
	SpanVerify     = "kyc.verify"
	SpanOTPDeliver = "kyc.otp.deliver"
)

// Attribute keys used by the activity clients.
const (
	AttrDocumentKind  = "document_kind"
	AttrFileBytes     = "file_bytes"
	AttrPhoneHash     = "phone_hash"
	AttrOverallScore  = "overall_score"
	AttrOverallMatch  = "overall_match"
	AttrServiceStatus = "service_status"
)
