package kycmock

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	panCandidateRe = regexp.MustCompile(`[A-Z0-9]{10}`)
	panFormatRe    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	panNameRe      = regexp.MustCompile(`(?:Name|NAME)\s*[:\-]?\s*([A-Z\s]+)`)
	panDOBRe       = regexp.MustCompile(`(?:Date of Birth|DOB|Birth)\s*[:\-]?\s*(\d{2}[/\-]\d{2}[/\-]\d{4})`)

	aadhaarSpacedRe  = regexp.MustCompile(`\b(\d{4}\s\d{4}\s\d{4})\b`)
	aadhaarCompactRe = regexp.MustCompile(`\b(\d{12})\b`)
	aadhaarNameRes   = []*regexp.Regexp{
		regexp.MustCompile(`(?:Name|NAME)\s*[:\-]?\s*([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)`),
		regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s[A-Z][a-z]+){1,3})`),
	}
	aadhaarDOBRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:DOB|Date of Birth|Birth)\s*[:\-]?\s*(\d{2}[/\-]\d{2}[/\-]\d{4})`),
		regexp.MustCompile(`(\d{2}[/\-]\d{2}[/\-]\d{4})`),
	}
	aadhaarAddressRe = regexp.MustCompile(`(?s)(?:Address|ADDRESS)[:\-]?\s*(.+?)(?:\n\n|$)`)
)

// smartPANCorrection fixes common misreads using the PAN structure:
// five letters, four digits, one letter.
func smartPANCorrection(text string) string {
	if len(text) != 10 {
		return text
	}
	toLetter := map[byte]byte{'0': 'O', '1': 'I', '5': 'S', '8': 'B', '2': 'Z', '6': 'G'}
	toDigit := map[byte]byte{'O': '0', 'I': '1', 'S': '5', 'B': '8', 'Z': '2', 'G': '6', 'Q': '0'}

	chars := []byte(strings.ToUpper(text))
	for i := 0; i < 5; i++ {
		if !unicode.IsLetter(rune(chars[i])) {
			if r, ok := toLetter[chars[i]]; ok {
				chars[i] = r
			}
		}
	}
	for i := 5; i < 9; i++ {
		if !unicode.IsDigit(rune(chars[i])) {
			if d, ok := toDigit[chars[i]]; ok {
				chars[i] = d
			}
		}
	}
	if unicode.IsDigit(rune(chars[9])) {
		if r, ok := toLetter[chars[9]]; ok {
			chars[9] = r
		}
	}
	return string(chars)
}

func findPAN(text string) string {
	for _, word := range panCandidateRe.FindAllString(strings.ToUpper(text), -1) {
		corrected := smartPANCorrection(word)
		if panFormatRe.MatchString(corrected) {
			return corrected
		}
	}
	return ""
}

// extractPAN scans document text for a PAN number plus the name and date
// of birth printed near it. Returns the number, a human message and the
// recognized fields.
func extractPAN(text string) (string, string, map[string]string) {
	fields := map[string]string{}

	pan := findPAN(text)
	if pan == "" {
		// Retry with whitespace collapsed in case the number was split.
		clean := strings.NewReplacer(" ", "", "\n", "").Replace(text)
		pan = findPAN(clean)
	}

	if m := panNameRe.FindStringSubmatch(text); m != nil {
		fields["name"] = strings.TrimSpace(m[1])
	}
	if m := panDOBRe.FindStringSubmatch(text); m != nil {
		fields["dob"] = m[1]
	}

	if pan == "" {
		return "", "Could not find valid PAN pattern", fields
	}
	fields["pan"] = pan
	return pan, "PAN extracted successfully", fields
}

// extractAadhaar scans document text for a 12-digit Aadhaar number plus
// name, date of birth and address.
func extractAadhaar(text string) (string, string, map[string]string) {
	fields := map[string]string{}

	var aadhaar string
	for _, re := range []*regexp.Regexp{aadhaarSpacedRe, aadhaarCompactRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			candidate := strings.ReplaceAll(m[1], " ", "")
			if len(candidate) == 12 {
				aadhaar = candidate
				break
			}
		}
	}

	for _, re := range aadhaarNameRes {
		if m := re.FindStringSubmatch(text); m != nil {
			fields["name"] = strings.TrimSpace(m[1])
			break
		}
	}
	for _, re := range aadhaarDOBRes {
		if m := re.FindStringSubmatch(text); m != nil {
			fields["dob"] = m[1]
			break
		}
	}
	if m := aadhaarAddressRe.FindStringSubmatch(text); m != nil {
		fields["address"] = strings.TrimSpace(m[1])
	}

	if aadhaar == "" {
		return "", "Could not find valid Aadhaar pattern", fields
	}
	fields["aadhaar"] = aadhaar
	return aadhaar, "Aadhaar extracted successfully", fields
}
