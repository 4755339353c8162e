package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kyc-verification-workflow/shared"
)

func newTestSession() *verificationSession {
	return &verificationSession{
		documents: make(map[shared.DocumentKind]*documentState),
	}
}

func TestGuard_WelcomeAndRiskChecksAlwaysPass(t *testing.T) {
	s := newTestSession()

	for _, id := range []shared.StepID{shared.StepWelcome, shared.StepRiskChecks} {
		ok, reason := s.guard(id)
		assert.True(t, ok, "step %s should have no guard", id)
		assert.Empty(t, reason)
	}
}

func TestGuard_BasicInfoNeedsVerifiedPhone(t *testing.T) {
	s := newTestSession()

	ok, reason := s.guard(shared.StepBasicInfo)
	assert.False(t, ok)
	assert.Contains(t, reason, "one-time code")

	s.otp.verified = true
	ok, _ = s.guard(shared.StepBasicInfo)
	assert.True(t, ok)
}

func TestGuard_DocumentUploadNeedsExtraction(t *testing.T) {
	s := newTestSession()

	ok, _ := s.guard(shared.StepDocumentUpload)
	assert.False(t, ok)

	// An uploaded document without an extraction result is not enough.
	s.documents[shared.DocumentKindPAN] = &documentState{fileName: "pan.txt"}
	ok, _ = s.guard(shared.StepDocumentUpload)
	assert.False(t, ok)

	s.documents[shared.DocumentKindPAN].extraction = &shared.ExtractionResult{
		Kind:           shared.DocumentKindPAN,
		DocumentNumber: "ABCDE1234F",
	}
	ok, _ = s.guard(shared.StepDocumentUpload)
	assert.True(t, ok)
}

func TestGuard_DocumentUploadSkipFlag(t *testing.T) {
	s := newTestSession()
	s.req.AllowUnextractedSkip = true

	ok, _ := s.guard(shared.StepDocumentUpload)
	assert.True(t, ok)
}

func TestGuard_SelfieCheckNeedsCapture(t *testing.T) {
	s := newTestSession()

	ok, reason := s.guard(shared.StepSelfieCheck)
	assert.False(t, ok)
	assert.Contains(t, reason, "selfie")

	s.selfieCaptured = true
	ok, _ = s.guard(shared.StepSelfieCheck)
	assert.True(t, ok)
}

func TestGuard_CompletedNeverAdvances(t *testing.T) {
	s := newTestSession()
	s.otp.verified = true
	s.selfieCaptured = true
	s.req.AllowUnextractedSkip = true

	ok, reason := s.guard(shared.StepCompleted)
	assert.False(t, ok)
	assert.Contains(t, reason, "submit")
}
