package activities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"kyc-verification-workflow/shared"
	"kyc-verification-workflow/tracer"
)

// verifyResponse is the wire format of the verification endpoint.
type verifyResponse struct {
	Status             string `json:"status"`
	VerificationResult struct {
		OverallMatch  bool                 `json:"overall_match"`
		OverallScore  float64              `json:"overall_score"`
		FieldScores   []shared.FieldScore  `json:"field_scores"`
		ExtractedData map[string]string    `json:"extracted_data"`
	} `json:"verification_result"`
	Timestamp string `json:"timestamp"`
}

// SubmitVerification sends the full dossier to the KYC service for
// cross-checking. A completed verification that found mismatches is a
// successful submission; only transport failures and malformed dossiers
// are errors.
func (a *Activities) SubmitVerification(ctx context.Context, dossier shared.Dossier) (shared.VerificationResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Submitting verification dossier", "applicant", dossier.Applicant.FullName)

	start := time.Now()
	ctx, span := a.tracerOrNoop().Start(ctx, tracer.SpanVerify)
	result, err := a.postDossier(ctx, dossier)
	if err == nil {
		span.SetAttributes(
			tracer.Bool(tracer.AttrOverallMatch, result.OverallMatch),
			tracer.Float64(tracer.AttrOverallScore, result.OverallScore),
		)
	}
	span.End(err)
	a.Metrics.ObserveVerification(start, err)
	if err != nil {
		return shared.VerificationResult{}, err
	}

	logger.Info("Verification completed",
		"overall_match", result.OverallMatch,
		"overall_score", result.OverallScore,
	)
	return result, nil
}

func (a *Activities) postDossier(ctx context.Context, dossier shared.Dossier) (shared.VerificationResult, error) {
	body, contentType, err := encodeDossierForm(dossier)
	if err != nil {
		return shared.VerificationResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/kyc/verify", body)
	if err != nil {
		return shared.VerificationResult{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return shared.VerificationResult{}, fmt.Errorf("verification request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.VerificationResult{}, fmt.Errorf("reading verification response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return shared.VerificationResult{}, fmt.Errorf("verification service returned %d: %s", resp.StatusCode, detailOf(payload))
	case resp.StatusCode >= 400:
		return shared.VerificationResult{}, temporal.NewNonRetryableApplicationError(
			detailOf(payload), shared.ErrTypeVerificationFailed, nil)
	}

	var wire verifyResponse
	if err := json.Unmarshal(payload, &wire); err != nil {
		return shared.VerificationResult{}, fmt.Errorf("decoding verification response: %w", err)
	}
	return shared.VerificationResult{
		OverallMatch:      wire.VerificationResult.OverallMatch,
		OverallScore:      wire.VerificationResult.OverallScore,
		FieldScores:       wire.VerificationResult.FieldScores,
		ExtractedData:     wire.VerificationResult.ExtractedData,
		DecisionTimestamp: wire.Timestamp,
	}, nil
}

func encodeDossierForm(dossier shared.Dossier) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	files := []struct {
		field string
		file  shared.DocumentFile
	}{
		{"pan_file", dossier.PAN},
		{"aadhaar_file", dossier.Aadhaar},
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.file.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.file.Content); err != nil {
			return nil, "", err
		}
	}

	fields := map[string]string{
		"name":           dossier.Applicant.FullName,
		"pan_number":     dossier.Applicant.PANNumber,
		"aadhaar_number": dossier.Applicant.AadhaarNumber,
		"date_of_birth":  dossier.Applicant.DateOfBirth,
		"address":        dossier.Applicant.Address,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
