package model

type Participant struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	VerificationID string `json:"certificateId"`
	Generated      bool   `json:"generated"`
}

// GenerationConfig is copied by value into every generation call, so edits
// made while a batch runs never reach in-flight renders.
type GenerationConfig struct {
	CourseTitle         string `json:"courseTitle" yaml:"course_title"`
	IDPrefix            string `json:"certificateIdPrefix" yaml:"id_prefix"`
	FixedSentence       string `json:"fixedSentence" yaml:"fixed_sentence"`
	VerificationBaseURL string `json:"verificationBaseUrl" yaml:"verification_base_url"`
}

// VerificationURL is the payload encoded into the participant's QR code.
func (c GenerationConfig) VerificationURL(p Participant) string {
	return c.VerificationBaseURL + p.VerificationID
}

// Content resolves the text a field of the given kind shows for p.
func (c GenerationConfig) Content(kind FieldKind, p Participant) string {
	switch kind {
	case FieldParticipantName:
		return p.Name
	case FieldCourseTitle:
		return c.CourseTitle
	case FieldFixedSentence:
		return c.FixedSentence
	case FieldCertificateID:
		return p.VerificationID
	case FieldVerificationCode:
		return c.VerificationURL(p)
	}
	return ""
}

type BatchStatus string

const (
	StatusIdle      BatchStatus = "idle"
	StatusRunning   BatchStatus = "running"
	StatusCompleted BatchStatus = "completed"
	StatusFailed    BatchStatus = "failed"
)

// BatchProgress counts processed items in Completed. Items that failed under
// the isolate policy are also counted in Failed.
type BatchProgress struct {
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Failed    int         `json:"failed"`
	Current   string      `json:"current"`
	Status    BatchStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
}
