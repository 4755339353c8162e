package workflows

import "kyc-verification-workflow/shared"

// guard evaluates the completion predicate for the given step against the
// current session state. It returns whether advancing is allowed and, when it
// is not, a user-visible reason.
func (s *verificationSession) guard(id shared.StepID) (bool, string) {
	switch id {
	case shared.StepWelcome, shared.StepRiskChecks:
		return true, ""

	case shared.StepBasicInfo:
		if !s.otp.verified {
			return false, "verify your phone number with the one-time code first"
		}

	case shared.StepDocumentUpload:
		if s.req.AllowUnextractedSkip {
			return true, ""
		}
		if !s.anyDocumentExtracted() {
			return false, "upload an identity document and wait for extraction to finish"
		}

	case shared.StepSelfieCheck:
		if !s.selfieCaptured {
			return false, "capture a selfie before continuing"
		}

	case shared.StepCompleted:
		// Not a guard: the completed step finishes via submit, never advance.
		return false, "use submit to finish the flow"
	}
	return true, ""
}

func (s *verificationSession) anyDocumentExtracted() bool {
	for _, d := range s.documents {
		if d.extraction != nil {
			return true
		}
	}
	return false
}
