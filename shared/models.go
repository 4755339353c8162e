package shared

// ApplicantDetails holds the identity fields collected and corrected during
// the wizard. Extraction results pre-fill empty fields only; a value the user
// already entered is never overwritten.
type ApplicantDetails struct {
	FullName      string `json:"fullName"`
	DateOfBirth   string `json:"dateOfBirth"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	PANNumber     string `json:"panNumber"`
	AadhaarNumber string `json:"aadhaarNumber"`
	Address       string `json:"address"`
}

// IdentityFields is the subset of applicant details an OTP challenge is
// bound to.
type IdentityFields struct {
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
}

// Identity returns the OTP-relevant snapshot of the applicant details.
func (a ApplicantDetails) Identity() IdentityFields {
	return IdentityFields{
		FullName:    a.FullName,
		DateOfBirth: a.DateOfBirth,
		Country:     a.Country,
		Phone:       a.Phone,
	}
}

// OtpChallenge is a single issued one-time code. The code never leaves the
// workflow; clients only ever see delivery confirmations and verified flags.
type OtpChallenge struct {
	Code      string         `json:"code"`
	IssuedFor IdentityFields `json:"issuedFor"`
	Consumed  bool           `json:"consumed"`
}

// DocumentKind enumerates the identity documents the wizard accepts.
type DocumentKind string

const (
	DocumentKindPAN      DocumentKind = "PAN"
	DocumentKindAadhaar  DocumentKind = "AADHAAR"
	DocumentKindPassport DocumentKind = "PASSPORT"
)

// Supported reports whether an extraction endpoint exists for the kind.
// PASSPORT is accepted by the UI but extraction is not implemented yet.
func (k DocumentKind) Supported() bool {
	return k == DocumentKindPAN || k == DocumentKindAadhaar
}

// DocumentSubmission carries an uploaded document into the workflow and on
// to the extraction activity.
type DocumentSubmission struct {
	Kind     DocumentKind `json:"kind"`
	FileName string       `json:"fileName"`
	Content  []byte       `json:"content"`
}

// ExtractionResult is what the extraction service returned for one document.
// Immutable once received; its fields are advisory defaults, not authority.
type ExtractionResult struct {
	Kind           DocumentKind      `json:"kind"`
	Status         string            `json:"status"`
	Message        string            `json:"message"`
	DocumentNumber string            `json:"documentNumber"`
	Fields         map[string]string `json:"fields"`
}

// DocumentFile is one file of the final dossier.
type DocumentFile struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}

// Dossier bundles both required documents with the corrected applicant
// details for the verification endpoint.
type Dossier struct {
	Applicant ApplicantDetails `json:"applicant"`
	PAN       DocumentFile     `json:"pan"`
	Aadhaar   DocumentFile     `json:"aadhaar"`
}

// FieldScore is one per-field comparison from the verification service.
type FieldScore struct {
	Field     string  `json:"field"`
	Extracted string  `json:"extracted"`
	Provided  string  `json:"provided"`
	Score     float64 `json:"score"`
	Match     bool    `json:"match"`
}

// VerificationResult is the terminal artifact of the workflow.
type VerificationResult struct {
	OverallMatch      bool              `json:"overallMatch"`
	OverallScore      float64           `json:"overallScore"`
	FieldScores       []FieldScore      `json:"fieldScores"`
	ExtractedData     map[string]string `json:"extractedData"`
	DecisionTimestamp string            `json:"decisionTimestamp"`
}

// OTPDelivery is the input to the OTP delivery activity.
type OTPDelivery struct {
	SessionID string `json:"sessionId"`
	Phone     string `json:"phone"`
	Code      string `json:"code"`
}

// SelfieCapture carries the captured liveness frame into the workflow.
type SelfieCapture struct {
	ImageDataURL string `json:"imageDataUrl"`
}

// VerificationRequest is the input to VerificationWorkflow.
type VerificationRequest struct {
	SessionID string           `json:"sessionId"`
	Applicant ApplicantDetails `json:"applicant"`

	// AllowUnextractedSkip lets the document-upload step be passed without a
	// successful extraction (demo escape hatch).
	AllowUnextractedSkip bool `json:"allowUnextractedSkip"`

	Policy ClassificationPolicy `json:"policy"`
}

// DocumentStatus summarizes one uploaded document for the state query.
type DocumentStatus struct {
	FileName       string `json:"fileName"`
	Extracted      bool   `json:"extracted"`
	DocumentNumber string `json:"documentNumber"`
}

// StateSnapshot is returned by the state query handler. It deliberately
// excludes the OTP secret and raw file contents.
type StateSnapshot struct {
	SessionID       string                          `json:"sessionId"`
	StepIndex       int                             `json:"stepIndex"`
	CurrentStep     StepID                          `json:"currentStep"`
	LastSuccessStep StepID                          `json:"lastSuccessStep,omitempty"`
	Applicant       ApplicantDetails                `json:"applicant"`
	OTPIssued       bool                            `json:"otpIssued"`
	OTPVerified     bool                            `json:"otpVerified"`
	OTPAttemptsLeft int                             `json:"otpAttemptsLeft"`
	Documents       map[DocumentKind]DocumentStatus `json:"documents"`
	SelfieCaptured  bool                            `json:"selfieCaptured"`
	IsSubmitting    bool                            `json:"isSubmitting"`
	Submitted       bool                            `json:"submitted"`
	Status          StatusID                        `json:"status,omitempty"`
	Result          *VerificationResult             `json:"result,omitempty"`
	LastError       *StepError                      `json:"lastError,omitempty"`
}
