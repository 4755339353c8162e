package workflows

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"kyc-verification-workflow/shared"
)

// otpManager is the challenge-response state for phone verification. It is a
// plain deterministic component: code generation is injected by the workflow
// (via a side effect) so the manager itself replays safely.
type otpManager struct {
	challenge *shared.OtpChallenge
	attempts  int
	verified  bool
}

// validateIssueFields enforces the issue precondition: all identity fields
// present and a plausible phone number.
func validateIssueFields(f shared.IdentityFields) error {
	switch {
	case strings.TrimSpace(f.FullName) == "":
		return shared.NewError(shared.ErrCodePrecondition, "full name is required before requesting a code")
	case strings.TrimSpace(f.DateOfBirth) == "":
		return shared.NewError(shared.ErrCodePrecondition, "date of birth is required before requesting a code")
	case strings.TrimSpace(f.Country) == "":
		return shared.NewError(shared.ErrCodePrecondition, "country is required before requesting a code")
	case len(strings.TrimSpace(f.Phone)) < shared.MinPhoneDigits:
		return shared.NewError(shared.ErrCodePrecondition,
			fmt.Sprintf("phone number must have at least %d digits", shared.MinPhoneDigits))
	}
	return nil
}

// Issue binds a freshly generated code to a snapshot of the identity fields.
// An outstanding challenge is replaced, never reused, and the attempt counter
// restarts.
func (m *otpManager) Issue(fields shared.IdentityFields, code string) error {
	if err := validateIssueFields(fields); err != nil {
		return err
	}
	m.challenge = &shared.OtpChallenge{Code: code, IssuedFor: fields}
	m.attempts = 0
	return nil
}

// Verify compares the user input against the outstanding challenge by exact
// string match. A consumed or locked challenge must be re-issued first.
func (m *otpManager) Verify(code string) error {
	switch {
	case m.challenge == nil:
		return shared.NewError(shared.ErrCodeNoChallenge, "no code has been issued yet; request one first")
	case m.challenge.Consumed:
		return shared.NewError(shared.ErrCodeNoChallenge, "this code was already used; request a new one")
	case m.attempts >= shared.OTPMaxAttempts:
		return shared.NewError(shared.ErrCodeOTPLocked, "too many incorrect attempts; request a new code")
	}

	if code != m.challenge.Code {
		m.attempts++
		if m.attempts >= shared.OTPMaxAttempts {
			return shared.NewError(shared.ErrCodeOTPLocked, "too many incorrect attempts; request a new code")
		}
		return shared.NewError(shared.ErrCodeOTPMismatch, "the code does not match, try again")
	}

	m.challenge.Consumed = true
	m.verified = true
	return nil
}

// AttemptsLeft reports how many mismatches remain before lockout.
func (m *otpManager) AttemptsLeft() int {
	left := shared.OTPMaxAttempts - m.attempts
	if left < 0 {
		return 0
	}
	return left
}

// randomOTPCode draws a zero-padded numeric code. Only ever called from
// inside workflow.SideEffect so history replay sees a stable value.
func randomOTPCode() string {
	max := big.NewInt(1)
	for i := 0; i < shared.OTPCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand failing means the host is broken; a constant beats a panic
		// inside a side effect.
		return strings.Repeat("0", shared.OTPCodeLength)
	}
	return fmt.Sprintf("%0*d", shared.OTPCodeLength, n)
}
