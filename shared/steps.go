package shared

// StepID identifies a wizard step. The sequence is fixed at compile time.
type StepID string

const (
	StepWelcome        StepID = "welcome"
	StepBasicInfo      StepID = "basic-info"
	StepDocumentUpload StepID = "document-upload"
	StepSelfieCheck    StepID = "selfie-check"
	StepRiskChecks     StepID = "risk-checks"
	StepCompleted      StepID = "completed"
)

// Step is one entry of the wizard sequence.
type Step struct {
	ID      StepID `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

var steps = []Step{
	{
		ID:      StepWelcome,
		Title:   "KYC Verification",
		Message: "To perform verification you will need an ID document, a clear selfie and proof of address.",
		Hint:    "Keep your PAN and Aadhaar cards at hand.",
	},
	{
		ID:      StepBasicInfo,
		Title:   "Basic Information",
		Message: "Tell us who you are and verify your phone number with a one-time code.",
		Hint:    "The code is sent to the phone number you enter.",
	},
	{
		ID:      StepDocumentUpload,
		Title:   "Upload ID",
		Message: "We need to verify your identity. Please upload a clear photo of your PAN or Aadhaar card.",
		Hint:    "JPG, PNG or PDF. Blurry images will fail extraction.",
	},
	{
		ID:      StepSelfieCheck,
		Title:   "Take a Selfie",
		Message: "Make sure your face is well-lit and fits inside the frame.",
		Hint:    "The camera is released as soon as you leave this step.",
	},
	{
		ID:      StepRiskChecks,
		Title:   "Risk Checks",
		Message: "We screen your details against compliance watchlists.",
		Hint:    "No action needed on this step.",
	},
	{
		ID:      StepCompleted,
		Title:   "Review",
		Message: "Almost there! Please check your details before final submission.",
		Hint:    "Submitting sends your dossier for verification.",
	},
}

// Steps returns the fixed, ordered step sequence.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// StepCount returns the number of wizard steps.
func StepCount() int { return len(steps) }

// StepAt returns the step at the given index. The sequencer guarantees the
// index is always valid; out-of-range access is a programming error.
func StepAt(i int) Step { return steps[i] }
