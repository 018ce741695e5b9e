package payload

import "github.com/sunthewhat/easy-cert-generator/type/shared/model"

type UpdateConfigPayload struct {
	CourseTitle         string `json:"courseTitle" validate:"max=200"`
	CertificateIDPrefix string `json:"certificateIdPrefix" validate:"required,max=32"`
	FixedSentence       string `json:"fixedSentence" validate:"max=500"`
	VerificationBaseURL string `json:"verificationBaseUrl" validate:"required,url"`
}

func (p UpdateConfigPayload) ToModel() model.GenerationConfig {
	return model.GenerationConfig{
		CourseTitle:         p.CourseTitle,
		IDPrefix:            p.CertificateIDPrefix,
		FixedSentence:       p.FixedSentence,
		VerificationBaseURL: p.VerificationBaseURL,
	}
}
