package activities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"kyc-verification-workflow/shared"
)

func newActivityEnv(t *testing.T, baseURL string) (*testsuite.TestActivityEnvironment, *Activities) {
	t.Helper()
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()
	a := &Activities{BaseURL: baseURL}
	env.RegisterActivity(a)
	return env, a
}

func panSubmission() shared.DocumentSubmission {
	return shared.DocumentSubmission{
		Kind:     shared.DocumentKindPAN,
		FileName: "pan.txt",
		Content:  []byte("Permanent Account Number ABCDE1234F"),
	}
}

func TestExtractDocument_PANSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()
		assert.Equal(t, "pan.txt", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "SUCCESS",
			"pan": "ABCDE1234F",
			"message": "PAN extracted successfully",
			"extracted_data": {"pan": "ABCDE1234F", "name": "ASHA VERMA"}
		}`))
	}))
	defer srv.Close()

	env, a := newActivityEnv(t, srv.URL)
	val, err := env.ExecuteActivity(a.ExtractDocument, panSubmission())
	require.NoError(t, err)

	var result shared.ExtractionResult
	require.NoError(t, val.Get(&result))
	assert.Equal(t, "/kyc/pan", gotPath)
	assert.Equal(t, shared.DocumentKindPAN, result.Kind)
	assert.Equal(t, "ABCDE1234F", result.DocumentNumber)
	assert.Equal(t, "ASHA VERMA", result.Fields["name"])
}

func TestExtractDocument_AadhaarEndpointAndNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kyc/aadhaar", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "SUCCESS", "aadhaar": "123412341234", "message": "ok", "extracted_data": {}}`))
	}))
	defer srv.Close()

	env, a := newActivityEnv(t, srv.URL)
	val, err := env.ExecuteActivity(a.ExtractDocument, shared.DocumentSubmission{
		Kind:     shared.DocumentKindAadhaar,
		FileName: "aadhaar.txt",
		Content:  []byte("1234 1234 1234"),
	})
	require.NoError(t, err)

	var result shared.ExtractionResult
	require.NoError(t, val.Get(&result))
	assert.Equal(t, "123412341234", result.DocumentNumber)
}

func TestExtractDocument_RejectionIsNonRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status": "FAILED", "pan": null, "message": "Could not find valid PAN pattern", "extracted_data": {}}`))
	}))
	defer srv.Close()

	env, a := newActivityEnv(t, srv.URL)
	_, err := env.ExecuteActivity(a.ExtractDocument, panSubmission())
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, shared.ErrTypeExtractionFailed, appErr.Type())
	assert.Contains(t, appErr.Message(), "Could not find valid PAN pattern")
}

func TestExtractDocument_ServerErrorStaysRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "Internal server error"}`))
	}))
	defer srv.Close()

	env, a := newActivityEnv(t, srv.URL)
	_, err := env.ExecuteActivity(a.ExtractDocument, panSubmission())
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	if assert.ErrorAs(t, err, &appErr) {
		assert.NotEqual(t, shared.ErrTypeExtractionFailed, appErr.Type())
	}
}

func TestExtractDocument_PassportUnsupported(t *testing.T) {
	env, a := newActivityEnv(t, "http://localhost:0")
	_, err := env.ExecuteActivity(a.ExtractDocument, shared.DocumentSubmission{
		Kind:     shared.DocumentKindPassport,
		FileName: "passport.txt",
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, shared.ErrTypeUnsupportedDocument, appErr.Type())
}
