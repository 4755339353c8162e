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

// extractionResponse is the wire format of the extraction endpoints.
type extractionResponse struct {
	Status        string            `json:"status"`
	Message       string            `json:"message"`
	PAN           string            `json:"pan,omitempty"`
	Aadhaar       string            `json:"aadhaar,omitempty"`
	ExtractedData map[string]string `json:"extracted_data,omitempty"`
}

type errorDetail struct {
	Detail string `json:"detail"`
}

func endpointFor(kind shared.DocumentKind) (string, error) {
	switch kind {
	case shared.DocumentKindPAN:
		return "/kyc/pan", nil
	case shared.DocumentKindAadhaar:
		return "/kyc/aadhaar", nil
	default:
		return "", temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("no extraction endpoint for document kind %q", kind),
			shared.ErrTypeUnsupportedDocument, nil)
	}
}

// ExtractDocument uploads a document image to the KYC service and returns
// the fields it recognized. Rejections (unreadable image, number not found)
// come back as non-retryable errors; transport and server failures are left
// retryable for the workflow's retry policy.
func (a *Activities) ExtractDocument(ctx context.Context, sub shared.DocumentSubmission) (shared.ExtractionResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Extracting document", "kind", sub.Kind, "file", sub.FileName)

	path, err := endpointFor(sub.Kind)
	if err != nil {
		return shared.ExtractionResult{}, err
	}

	start := time.Now()
	ctx, span := a.tracerOrNoop().Start(ctx, tracer.SpanExtract,
		tracer.String(tracer.AttrDocumentKind, string(sub.Kind)),
		tracer.Int64(tracer.AttrFileBytes, int64(len(sub.Content))),
	)
	var wire extractionResponse
	wire, err = a.postDocument(ctx, path, sub)
	span.End(err)
	a.Metrics.ObserveExtraction(string(sub.Kind), start, err)
	if err != nil {
		return shared.ExtractionResult{}, err
	}

	number := wire.PAN
	if sub.Kind == shared.DocumentKindAadhaar {
		number = wire.Aadhaar
	}
	result := shared.ExtractionResult{
		Kind:           sub.Kind,
		Status:         wire.Status,
		Message:        wire.Message,
		DocumentNumber: number,
		Fields:         wire.ExtractedData,
	}
	logger.Info("Document extracted", "kind", sub.Kind, "fields", len(result.Fields))
	return result, nil
}

func (a *Activities) postDocument(ctx context.Context, path string, sub shared.DocumentSubmission) (extractionResponse, error) {
	body, contentType, err := encodeFileForm(sub.FileName, sub.Content)
	if err != nil {
		return extractionResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, body)
	if err != nil {
		return extractionResponse{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return extractionResponse{}, fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return extractionResponse{}, fmt.Errorf("reading extraction response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return extractionResponse{}, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, detailOf(payload))
	case resp.StatusCode >= 400:
		return extractionResponse{}, temporal.NewNonRetryableApplicationError(
			detailOf(payload), shared.ErrTypeExtractionFailed, nil)
	}

	var wire extractionResponse
	if err := json.Unmarshal(payload, &wire); err != nil {
		return extractionResponse{}, fmt.Errorf("decoding extraction response: %w", err)
	}
	if wire.Status != "SUCCESS" {
		return extractionResponse{}, temporal.NewNonRetryableApplicationError(
			wire.Message, shared.ErrTypeExtractionFailed, nil)
	}
	return wire, nil
}

// detailOf pulls the human-readable message out of an error payload,
// falling back to the raw body.
func detailOf(payload []byte) string {
	var d errorDetail
	if err := json.Unmarshal(payload, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	var wire extractionResponse
	if err := json.Unmarshal(payload, &wire); err == nil && wire.Message != "" {
		return wire.Message
	}
	return string(payload)
}

// encodeFileForm builds a multipart body with a single file field named
// "file", the shape the extraction endpoints expect.
func encodeFileForm(fileName string, content []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
