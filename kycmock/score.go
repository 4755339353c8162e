package kycmock

import "math"

// matchThreshold is the minimum per-field similarity for a match.
const matchThreshold = 80.0

type formData struct {
	Name          string
	PANNumber     string
	AadhaarNumber string
	DateOfBirth   string
	Address       string
}

type fieldScore struct {
	Field     string  `json:"field"`
	Extracted string  `json:"extracted"`
	Provided  string  `json:"provided"`
	Score     float64 `json:"score"`
	Match     bool    `json:"match"`
}

type verificationResult struct {
	OverallMatch  bool              `json:"overall_match"`
	OverallScore  float64           `json:"overall_score"`
	FieldScores   []fieldScore      `json:"field_scores"`
	ExtractedData map[string]string `json:"extracted_data"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// verifyAndScore compares each extracted field against what the applicant
// declared. A field only contributes when both sides are present; the
// overall score is the mean of the contributing fields.
func verifyAndScore(extracted map[string]string, form formData) verificationResult {
	type pair struct {
		field, extracted, provided string
	}
	pairs := []pair{
		{"PAN", extracted["pan"], form.PANNumber},
		{"Aadhaar", extracted["aadhaar"], form.AadhaarNumber},
		{"Name", extracted["name"], form.Name},
		{"Date of Birth", extracted["dob"], form.DateOfBirth},
	}

	result := verificationResult{
		OverallMatch:  true,
		FieldScores:   []fieldScore{},
		ExtractedData: extracted,
	}
	for _, p := range pairs {
		if p.extracted == "" || p.provided == "" {
			continue
		}
		score := round2(Similarity(p.extracted, p.provided))
		match := score >= matchThreshold
		result.FieldScores = append(result.FieldScores, fieldScore{
			Field:     p.field,
			Extracted: p.extracted,
			Provided:  p.provided,
			Score:     score,
			Match:     match,
		})
		if !match {
			result.OverallMatch = false
		}
	}

	if len(result.FieldScores) > 0 {
		var sum float64
		for _, s := range result.FieldScores {
			sum += s.Score
		}
		result.OverallScore = round2(sum / float64(len(result.FieldScores)))
	}
	return result
}
