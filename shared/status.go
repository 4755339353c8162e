package shared

import "fmt"

// StatusID identifies a terminal compliance status from the fixed taxonomy.
type StatusID string

const (
	StatusReported                StatusID = "REPORTED"
	StatusFlagged                 StatusID = "FLAGGED"
	StatusManualReview            StatusID = "MANUAL_REVIEW"
	StatusUnderObservation        StatusID = "UNDER_OBSERVATION"
	StatusAcceptedUnderObservation StatusID = "ACCEPTED_UNDER_OBSERVATION"
	StatusAccepted                StatusID = "ACCEPTED"
)

// StatusEntry is one row of the display taxonomy: a human label, a visual
// accent, the model's plain-language meaning and the FIU-style regulatory
// classification.
type StatusEntry struct {
	ID           StatusID `json:"id"`
	Label        string   `json:"label"`
	Accent       string   `json:"accent"`
	ModelMeaning string   `json:"modelMeaning"`
	FIUCode      string   `json:"fiuCode"`
	FIUMeaning   string   `json:"fiuMeaning"`
}

var taxonomy = []StatusEntry{
	{
		ID:           StatusReported,
		Label:        "Reported",
		Accent:       "red",
		ModelMeaning: "Identity could not be established; the case has been reported.",
		FIUCode:      "STR-01",
		FIUMeaning:   "Suspicious transaction report filed with the FIU.",
	},
	{
		ID:           StatusFlagged,
		Label:        "Flagged",
		Accent:       "orange",
		ModelMeaning: "Significant mismatches across identity fields.",
		FIUCode:      "AML-02",
		FIUMeaning:   "Flagged for enhanced due diligence.",
	},
	{
		ID:           StatusManualReview,
		Label:        "Manual Review",
		Accent:       "amber",
		ModelMeaning: "Automated checks were inconclusive; routed to an analyst.",
		FIUCode:      "EDD-03",
		FIUMeaning:   "Pending analyst disposition.",
	},
	{
		ID:           StatusUnderObservation,
		Label:        "Under Observation",
		Accent:       "blue",
		ModelMeaning: "Verified with reservations; account activity is monitored.",
		FIUCode:      "MON-04",
		FIUMeaning:   "Ongoing monitoring required.",
	},
	{
		ID:           StatusAcceptedUnderObservation,
		Label:        "Accepted (Under Observation)",
		Accent:       "teal",
		ModelMeaning: "Accepted; a routine monitoring window applies.",
		FIUCode:      "MON-05",
		FIUMeaning:   "Accepted with a monitoring period.",
	},
	{
		ID:           StatusAccepted,
		Label:        "Accepted",
		Accent:       "green",
		ModelMeaning: "Identity verified.",
		FIUCode:      "CLR-00",
		FIUMeaning:   "No regulatory action.",
	},
}

// Taxonomy returns the fixed six-entry status table.
func Taxonomy() []StatusEntry {
	out := make([]StatusEntry, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// Classify maps a status id to its display entry.
func Classify(id StatusID) (StatusEntry, error) {
	for _, e := range taxonomy {
		if e.ID == id {
			return e, nil
		}
	}
	return StatusEntry{}, fmt.Errorf("unknown status %q", id)
}

// ClassificationPolicy holds the score cutoffs used to derive a status from a
// verification result. The cutoffs are configuration, not code: callers load
// them from the environment and pass them into the workflow request.
type ClassificationPolicy struct {
	// Applied when the service reports an overall match.
	AcceptScore  float64 `json:"acceptScore"`
	ObserveScore float64 `json:"observeScore"`

	// Applied when the service reports a mismatch.
	ReviewScore float64 `json:"reviewScore"`
	FlagScore   float64 `json:"flagScore"`
}

// DeriveStatusID maps a verification result onto the taxonomy. Matched
// dossiers land on the accepted side of the table, mismatched ones on the
// escalation side; the policy cutoffs decide how far.
func DeriveStatusID(res VerificationResult, p ClassificationPolicy) StatusID {
	if res.OverallMatch {
		switch {
		case res.OverallScore >= p.AcceptScore:
			return StatusAccepted
		case res.OverallScore >= p.ObserveScore:
			return StatusAcceptedUnderObservation
		default:
			return StatusUnderObservation
		}
	}
	switch {
	case res.OverallScore >= p.ReviewScore:
		return StatusManualReview
	case res.OverallScore >= p.FlagScore:
		return StatusFlagged
	default:
		return StatusReported
	}
}
