package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() ClassificationPolicy {
	return ClassificationPolicy{
		AcceptScore:  90,
		ObserveScore: 75,
		ReviewScore:  50,
		FlagScore:    25,
	}
}

func TestTaxonomy_FixedEntries(t *testing.T) {
	tax := Taxonomy()
	require.Len(t, tax, 6)

	ids := make([]StatusID, 0, len(tax))
	for _, e := range tax {
		ids = append(ids, e.ID)
		assert.NotEmpty(t, e.Label)
		assert.NotEmpty(t, e.FIUCode)
		assert.NotEmpty(t, e.ModelMeaning)
	}
	assert.Equal(t, []StatusID{
		StatusReported,
		StatusFlagged,
		StatusManualReview,
		StatusUnderObservation,
		StatusAcceptedUnderObservation,
		StatusAccepted,
	}, ids)
}

func TestClassify(t *testing.T) {
	entry, err := Classify(StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, "CLR-00", entry.FIUCode)

	_, err = Classify(StatusID("NOT_A_STATUS"))
	assert.Error(t, err)
}

func TestDeriveStatusID(t *testing.T) {
	cases := []struct {
		name  string
		match bool
		score float64
		want  StatusID
	}{
		{"matched high score", true, 95, StatusAccepted},
		{"matched at accept cutoff", true, 90, StatusAccepted},
		{"matched mid score", true, 80, StatusAcceptedUnderObservation},
		{"matched low score", true, 60, StatusUnderObservation},
		{"mismatch near miss", false, 70, StatusManualReview},
		{"mismatch at review cutoff", false, 50, StatusManualReview},
		{"mismatch weak", false, 30, StatusFlagged},
		{"mismatch hopeless", false, 10, StatusReported},
		{"mismatch zero", false, 0, StatusReported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := VerificationResult{OverallMatch: tc.match, OverallScore: tc.score}
			assert.Equal(t, tc.want, DeriveStatusID(res, testPolicy()))
		})
	}
}
