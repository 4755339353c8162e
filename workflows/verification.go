package workflows

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"kyc-verification-workflow/shared"
)

// verificationSession holds the single mutable session record. Only the
// sequencer mutates it; clients observe it through queries.
type verificationSession struct {
	req shared.VerificationRequest

	// Sequencer state
	stepIndex   int
	lastSuccess shared.StepID
	lastErr     *shared.StepError

	// Collected data
	applicant      shared.ApplicantDetails
	otp            otpManager
	documents      map[shared.DocumentKind]*documentState
	selfieCaptured bool
	selfieDataURL  string

	// Submission state
	isSubmitting bool
	result       *shared.VerificationResult
	status       shared.StatusID
	submitted    bool

	// Lifecycle
	ended   bool
	expired bool

	logger log.Logger
	actCtx workflow.Context
}

type documentState struct {
	fileName   string
	content    []byte
	extraction *shared.ExtractionResult
}

// newVerificationSession initializes session state, registers the query
// handlers and configures activity options.
func newVerificationSession(ctx workflow.Context, req shared.VerificationRequest) (*verificationSession, error) {
	s := &verificationSession{
		req:       req,
		applicant: req.Applicant,
		documents: make(map[shared.DocumentKind]*documentState),
		logger:    workflow.GetLogger(ctx),
	}

	if err := workflow.SetQueryHandler(ctx, shared.QueryState, func() (shared.StateSnapshot, error) {
		return s.snapshot(), nil
	}); err != nil {
		return nil, fmt.Errorf("failed to set state query handler: %w", err)
	}
	if err := workflow.SetQueryHandler(ctx, shared.QueryCurrentStep, func() (shared.Step, error) {
		return shared.StepAt(s.stepIndex), nil
	}); err != nil {
		return nil, fmt.Errorf("failed to set step query handler: %w", err)
	}

	// External service calls get bounded time and a retry policy; business
	// rejections are non-retryable.
	actOpts := workflow.ActivityOptions{
		TaskQueue:           shared.ActivityTaskQueue,
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
			NonRetryableErrorTypes: []string{
				shared.ErrTypeExtractionFailed,
				shared.ErrTypeUnsupportedDocument,
				shared.ErrTypeVerificationFailed,
			},
		},
	}
	s.actCtx = workflow.WithActivityOptions(ctx, actOpts)

	return s, nil
}

// VerificationWorkflow is the step sequencer for one identity verification
// session. Clients drive it with signals (advance, retreat, OTP, uploads,
// submit) and observe it with queries; every guarded transition is evaluated
// after the triggering action completed, so no two external calls race on the
// same field.
//
// The step sequence has no terminal step: a successful submit moves the
// session into Submitted mode, which only an explicit return-to-flow signal
// leaves. The session itself ends on an end-session signal or after
// shared.SessionTimeout.
func VerificationWorkflow(ctx workflow.Context, req shared.VerificationRequest) (string, error) {
	s, err := newVerificationSession(ctx, req)
	if err != nil {
		return "", err
	}

	s.logger.Info("Verification session started", "sessionId", req.SessionID)

	selector := workflow.NewSelector(ctx)

	deadline := workflow.NewTimer(ctx, shared.SessionTimeout)
	selector.AddFuture(deadline, func(f workflow.Future) {
		_ = f.Get(ctx, nil)
		s.expired = true
		s.logger.Info("Session deadline reached", "sessionId", req.SessionID, "submitted", s.submitted)
	})

	s.addSignalHandlers(ctx, selector)

	for !s.ended && !s.expired {
		selector.Select(ctx)
	}

	if s.submitted {
		return fmt.Sprintf("KYC-%s-SUBMITTED", req.SessionID), nil
	}
	return fmt.Sprintf("KYC-%s-ABANDONED", req.SessionID), nil
}

// addSignalHandlers wires every wizard action onto the selector. Handlers run
// to completion (including any activity they await) before the next signal is
// taken, which keeps state mutation strictly sequential.
func (s *verificationSession) addSignalHandlers(ctx workflow.Context, selector workflow.Selector) {
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalAdvance), func(ch workflow.ReceiveChannel, _ bool) {
		ch.Receive(ctx, nil)
		s.handleAdvance()
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalRetreat), func(ch workflow.ReceiveChannel, _ bool) {
		ch.Receive(ctx, nil)
		s.handleRetreat()
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalUpdateFields), func(ch workflow.ReceiveChannel, _ bool) {
		var fields shared.ApplicantDetails
		ch.Receive(ctx, &fields)
		s.handleUpdateFields(fields)
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalRequestOTP), func(ch workflow.ReceiveChannel, _ bool) {
		ch.Receive(ctx, nil)
		s.handleRequestOTP(ctx)
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalSubmitOTP), func(ch workflow.ReceiveChannel, _ bool) {
		var code string
		ch.Receive(ctx, &code)
		s.handleSubmitOTP(code)
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalDocumentUploaded), func(ch workflow.ReceiveChannel, _ bool) {
		var sub shared.DocumentSubmission
		ch.Receive(ctx, &sub)
		s.handleDocumentUploaded(ctx, sub)
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalSelfieCaptured), func(ch workflow.ReceiveChannel, _ bool) {
		var capture shared.SelfieCapture
		ch.Receive(ctx, &capture)
		s.handleSelfieCaptured(capture)
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalSubmit), func(ch workflow.ReceiveChannel, _ bool) {
		ch.Receive(ctx, nil)
		s.handleSubmit(ctx)
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalReturnToFlow), func(ch workflow.ReceiveChannel, _ bool) {
		ch.Receive(ctx, nil)
		s.handleReturnToFlow()
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, shared.SignalEndSession), func(ch workflow.ReceiveChannel, _ bool) {
		ch.Receive(ctx, nil)
		s.ended = true
		s.logger.Info("Session ended by client", "sessionId", s.req.SessionID)
	})
}

// handleAdvance moves to the next step if the current step's guard holds;
// otherwise it is a no-op that records the reason.
func (s *verificationSession) handleAdvance() {
	step := shared.StepAt(s.stepIndex)
	ok, reason := s.guard(step.ID)
	if !ok {
		s.fail(shared.ErrCodePrecondition, reason)
		return
	}
	s.stepIndex++
	s.lastSuccess = step.ID
	s.lastErr = nil
	s.logger.Info("Advanced", "from", step.ID, "to", shared.StepAt(s.stepIndex).ID)
}

// handleRetreat steps back unconditionally, except at the first step.
func (s *verificationSession) handleRetreat() {
	if s.stepIndex == 0 {
		return
	}
	s.stepIndex--
	s.lastErr = nil
	s.logger.Info("Retreated", "to", shared.StepAt(s.stepIndex).ID)
}

// handleUpdateFields overwrites applicant fields with the non-empty values of
// the payload. User corrections always win over extraction defaults.
func (s *verificationSession) handleUpdateFields(fields shared.ApplicantDetails) {
	setIfProvided(&s.applicant.FullName, fields.FullName)
	setIfProvided(&s.applicant.DateOfBirth, fields.DateOfBirth)
	setIfProvided(&s.applicant.Country, fields.Country)
	setIfProvided(&s.applicant.Phone, fields.Phone)
	setIfProvided(&s.applicant.PANNumber, fields.PANNumber)
	setIfProvided(&s.applicant.AadhaarNumber, fields.AadhaarNumber)
	setIfProvided(&s.applicant.Address, fields.Address)
}

// handleRequestOTP issues a fresh challenge bound to the current identity
// fields and dispatches it through the delivery activity. A second request
// replaces the outstanding challenge.
func (s *verificationSession) handleRequestOTP(ctx workflow.Context) {
	identity := s.applicant.Identity()
	if err := validateIssueFields(identity); err != nil {
		s.failErr(err)
		return
	}

	var code string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
		return randomOTPCode()
	}).Get(&code); err != nil {
		s.fail(shared.ErrCodeOTPDelivery, "could not generate a one-time code")
		return
	}

	if err := s.otp.Issue(identity, code); err != nil {
		s.failErr(err)
		return
	}

	delivery := shared.OTPDelivery{
		SessionID: s.req.SessionID,
		Phone:     identity.Phone,
		Code:      code,
	}
	var deliveryID string
	if err := workflow.ExecuteActivity(s.actCtx, a.DeliverOTP, delivery).Get(ctx, &deliveryID); err != nil {
		s.logger.Error("OTP delivery failed", "sessionId", s.req.SessionID, "error", err)
		// The challenge stays valid; the user can request again or, in the
		// prototype, read the code from the worker log.
		s.fail(shared.ErrCodeOTPDelivery, "could not deliver the one-time code, request a new one")
		return
	}

	s.lastErr = nil
	s.logger.Info("One-time code issued", "sessionId", s.req.SessionID, "deliveryId", deliveryID)
}

func (s *verificationSession) handleSubmitOTP(code string) {
	if err := s.otp.Verify(code); err != nil {
		s.failErr(err)
		return
	}
	s.lastErr = nil
	s.logger.Info("Phone number verified", "sessionId", s.req.SessionID)
}

// handleDocumentUploaded runs extraction for the uploaded document, merges
// extracted fields into empty applicant fields, and auto-advances when the
// session is sitting on the document-upload step.
func (s *verificationSession) handleDocumentUploaded(ctx workflow.Context, sub shared.DocumentSubmission) {
	if !sub.Kind.Supported() {
		s.fail(shared.ErrCodeUnsupportedKind, fmt.Sprintf("%s documents are not yet supported", sub.Kind))
		return
	}

	s.documents[sub.Kind] = &documentState{fileName: sub.FileName, content: sub.Content}

	var res shared.ExtractionResult
	if err := workflow.ExecuteActivity(s.actCtx, a.ExtractDocument, sub).Get(ctx, &res); err != nil {
		s.logger.Error("Extraction failed", "sessionId", s.req.SessionID, "kind", sub.Kind, "error", err)
		s.fail(shared.ErrCodeExtractionFailed, failureReason(err))
		return
	}

	s.documents[sub.Kind].extraction = &res
	s.applyExtractedDefaults(res)
	s.lastErr = nil
	s.logger.Info("Document extracted", "sessionId", s.req.SessionID, "kind", sub.Kind, "documentNumber", res.DocumentNumber)

	if shared.StepAt(s.stepIndex).ID == shared.StepDocumentUpload {
		s.handleAdvance()
	}
}

func (s *verificationSession) handleSelfieCaptured(capture shared.SelfieCapture) {
	s.selfieCaptured = true
	s.selfieDataURL = capture.ImageDataURL
	s.lastErr = nil
	s.logger.Info("Selfie captured", "sessionId", s.req.SessionID)
}

// handleSubmit packages the dossier and sends it for verification. The local
// completeness check runs first so an incomplete dossier never costs a
// network call. Failure leaves the dossier resubmittable.
func (s *verificationSession) handleSubmit(ctx workflow.Context) {
	if shared.StepAt(s.stepIndex).ID != shared.StepCompleted {
		s.fail(shared.ErrCodePrecondition, "finish the remaining steps before submitting")
		return
	}
	if s.submitted {
		s.fail(shared.ErrCodePrecondition, "the dossier was already submitted")
		return
	}

	pan, aadhaar := s.documents[shared.DocumentKindPAN], s.documents[shared.DocumentKindAadhaar]
	if pan == nil || aadhaar == nil {
		s.fail(shared.ErrCodeIncompleteDossier, "both PAN and Aadhaar documents are required before submission")
		return
	}

	dossier := shared.Dossier{
		Applicant: s.applicant,
		PAN:       shared.DocumentFile{FileName: pan.fileName, Content: pan.content},
		Aadhaar:   shared.DocumentFile{FileName: aadhaar.fileName, Content: aadhaar.content},
	}

	s.isSubmitting = true
	var res shared.VerificationResult
	err := workflow.ExecuteActivity(s.actCtx, a.SubmitVerification, dossier).Get(ctx, &res)
	s.isSubmitting = false
	if err != nil {
		s.logger.Error("Verification submission failed", "sessionId", s.req.SessionID, "error", err)
		s.fail(shared.ErrCodeVerificationFailed, failureReason(err))
		return
	}

	s.result = &res
	s.status = shared.DeriveStatusID(res, s.req.Policy)
	s.submitted = true
	s.lastErr = nil
	s.logger.Info("Dossier submitted",
		"sessionId", s.req.SessionID,
		"overallScore", res.OverallScore,
		"overallMatch", res.OverallMatch,
		"status", s.status,
	)
}

// handleReturnToFlow leaves Submitted mode while preserving collected data.
func (s *verificationSession) handleReturnToFlow() {
	if !s.submitted {
		return
	}
	s.submitted = false
	s.logger.Info("Returned to flow", "sessionId", s.req.SessionID)
}

// applyExtractedDefaults fills empty applicant fields from an extraction
// result. Extraction is advisory: it never overwrites a present value.
func (s *verificationSession) applyExtractedDefaults(res shared.ExtractionResult) {
	fillIfEmpty(&s.applicant.FullName, res.Fields["name"])
	fillIfEmpty(&s.applicant.DateOfBirth, res.Fields["dob"])
	fillIfEmpty(&s.applicant.Address, res.Fields["address"])

	switch res.Kind {
	case shared.DocumentKindPAN:
		fillIfEmpty(&s.applicant.PANNumber, res.DocumentNumber)
	case shared.DocumentKindAadhaar:
		fillIfEmpty(&s.applicant.AadhaarNumber, res.DocumentNumber)
	}
}

func (s *verificationSession) snapshot() shared.StateSnapshot {
	docs := make(map[shared.DocumentKind]shared.DocumentStatus, len(s.documents))
	for kind, d := range s.documents {
		status := shared.DocumentStatus{FileName: d.fileName}
		if d.extraction != nil {
			status.Extracted = true
			status.DocumentNumber = d.extraction.DocumentNumber
		}
		docs[kind] = status
	}
	return shared.StateSnapshot{
		SessionID:       s.req.SessionID,
		StepIndex:       s.stepIndex,
		CurrentStep:     shared.StepAt(s.stepIndex).ID,
		LastSuccessStep: s.lastSuccess,
		Applicant:       s.applicant,
		OTPIssued:       s.otp.challenge != nil,
		OTPVerified:     s.otp.verified,
		OTPAttemptsLeft: s.otp.AttemptsLeft(),
		Documents:       docs,
		SelfieCaptured:  s.selfieCaptured,
		IsSubmitting:    s.isSubmitting,
		Submitted:       s.submitted,
		Status:          s.status,
		Result:          s.result,
		LastError:       s.lastErr,
	}
}

func (s *verificationSession) fail(code shared.ErrorCode, msg string) {
	s.lastErr = &shared.StepError{Code: code, Message: msg}
	s.logger.Info("Step action rejected",
		"sessionId", s.req.SessionID,
		"step", shared.StepAt(s.stepIndex).ID,
		"code", code,
		"reason", msg,
	)
}

func (s *verificationSession) failErr(err error) {
	code := shared.CodeOf(err)
	if code == "" {
		code = shared.ErrCodePrecondition
	}
	s.fail(code, err.Error())
}

// failureReason digs the service-provided message out of an activity error
// chain, falling back to the raw error text.
func failureReason(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}

func setIfProvided(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fillIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
