package activities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"kyc-verification-workflow/shared"
)

func testDossier() shared.Dossier {
	return shared.Dossier{
		Applicant: shared.ApplicantDetails{
			FullName:      "Asha Verma",
			DateOfBirth:   "12/03/1991",
			PANNumber:     "ABCDE1234F",
			AadhaarNumber: "123412341234",
			Address:       "42 MG Road, Bengaluru",
		},
		PAN:     shared.DocumentFile{FileName: "pan.txt", Content: []byte("ABCDE1234F")},
		Aadhaar: shared.DocumentFile{FileName: "aadhaar.txt", Content: []byte("1234 1234 1234")},
	}
}

func TestSubmitVerification_SendsFullDossier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kyc/verify", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		for _, field := range []string{"pan_file", "aadhaar_file"} {
			file, _, err := r.FormFile(field)
			require.NoError(t, err, "missing file field %s", field)
			file.Close()
		}
		assert.Equal(t, "Asha Verma", r.FormValue("name"))
		assert.Equal(t, "ABCDE1234F", r.FormValue("pan_number"))
		assert.Equal(t, "123412341234", r.FormValue("aadhaar_number"))
		assert.Equal(t, "12/03/1991", r.FormValue("date_of_birth"))
		assert.Equal(t, "42 MG Road, Bengaluru", r.FormValue("address"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "SUCCESS",
			"verification_result": {
				"overall_match": true,
				"overall_score": 95.25,
				"field_scores": [
					{"field": "PAN", "extracted": "ABCDE1234F", "provided": "ABCDE1234F", "score": 100, "match": true}
				],
				"extracted_data": {"pan": "ABCDE1234F"}
			},
			"timestamp": "2026-08-29T12:00:00"
		}`))
	}))
	defer srv.Close()

	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()
	a := &Activities{BaseURL: srv.URL}
	env.RegisterActivity(a)

	val, err := env.ExecuteActivity(a.SubmitVerification, testDossier())
	require.NoError(t, err)

	var result shared.VerificationResult
	require.NoError(t, val.Get(&result))
	assert.True(t, result.OverallMatch)
	assert.InDelta(t, 95.25, result.OverallScore, 0.001)
	require.Len(t, result.FieldScores, 1)
	assert.Equal(t, "PAN", result.FieldScores[0].Field)
	assert.Equal(t, "2026-08-29T12:00:00", result.DecisionTimestamp)
}

func TestSubmitVerification_MismatchIsStillASubmission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "FAILED",
			"verification_result": {
				"overall_match": false,
				"overall_score": 34.5,
				"field_scores": [],
				"extracted_data": {}
			},
			"timestamp": "2026-08-29T12:00:00"
		}`))
	}))
	defer srv.Close()

	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()
	a := &Activities{BaseURL: srv.URL}
	env.RegisterActivity(a)

	// A completed verification with mismatches is a business outcome, not
	// an activity failure.
	val, err := env.ExecuteActivity(a.SubmitVerification, testDossier())
	require.NoError(t, err)

	var result shared.VerificationResult
	require.NoError(t, val.Get(&result))
	assert.False(t, result.OverallMatch)
	assert.InDelta(t, 34.5, result.OverallScore, 0.001)
}
