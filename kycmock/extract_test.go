package kycmock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartPANCorrection(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ABCDE1234F", "ABCDE1234F"}, // already valid
		{"A8CDE1234F", "ABCDE1234F"}, // digit misread in the letter block
		{"ABCDEI234F", "ABCDE1234F"}, // letter misread in the digit block
		{"ABCDEQ234F", "ABCDE0234F"}, // Q only ever means 0
		{"0BCDE1234F", "OBCDE1234F"}, // leading zero becomes O
		{"ABCDE12340", "ABCDE1234O"}, // trailing digit becomes a letter
		{"abcde1234f", "ABCDE1234F"}, // case normalization
		{"SHORT", "SHORT"},           // wrong length passes through
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, smartPANCorrection(tc.in), "input %q", tc.in)
	}
}

func TestExtractPAN(t *testing.T) {
	text := "INCOME TAX DEPARTMENT\nPermanent Account Number\nABCDE1234F\nDOB: 12/03/1991\nName: ASHA VERMA"

	pan, message, fields := extractPAN(text)
	assert.Equal(t, "ABCDE1234F", pan)
	assert.Contains(t, message, "successfully")
	assert.Equal(t, "ABCDE1234F", fields["pan"])
	assert.Equal(t, "12/03/1991", fields["dob"])
	assert.Equal(t, "ASHA VERMA", fields["name"])
}

func TestExtractPAN_CorrectsMisreadNumber(t *testing.T) {
	pan, _, _ := extractPAN("Permanent Account Number A8CDEI234F")
	assert.Equal(t, "ABCDE1234F", pan)
}

func TestExtractPAN_SplitAcrossWhitespace(t *testing.T) {
	pan, _, _ := extractPAN("Permanent Account Number: ABCDE 1234 F")
	assert.Equal(t, "ABCDE1234F", pan)
}

func TestExtractPAN_NotFound(t *testing.T) {
	pan, message, fields := extractPAN("no identifiers here")
	assert.Empty(t, pan)
	assert.Contains(t, message, "Could not find")
	assert.NotContains(t, fields, "pan")
}

func TestExtractAadhaar(t *testing.T) {
	text := "Government of India\n1234 5678 9012\nName: Asha Verma\nDOB: 12/03/1991\nAddress: 42 MG Road\nBengaluru\n\nfooter"

	aadhaar, message, fields := extractAadhaar(text)
	assert.Equal(t, "123456789012", aadhaar)
	assert.Contains(t, message, "successfully")
	assert.Equal(t, "123456789012", fields["aadhaar"])
	assert.Equal(t, "Asha Verma", fields["name"])
	assert.Equal(t, "12/03/1991", fields["dob"])
	assert.Equal(t, "42 MG Road\nBengaluru", fields["address"])
}

func TestExtractAadhaar_CompactNumber(t *testing.T) {
	aadhaar, _, _ := extractAadhaar("UID 123456789012 issued")
	assert.Equal(t, "123456789012", aadhaar)
}

func TestExtractAadhaar_NotFound(t *testing.T) {
	aadhaar, message, _ := extractAadhaar("only 1234 5678 digits")
	assert.Empty(t, aadhaar)
	assert.Contains(t, message, "Could not find")
}
