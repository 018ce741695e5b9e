package model

const (
	DefaultFontFamily = "Cairo, sans-serif"

	DefaultIDPrefix            = "CERT"
	DefaultFixedSentence       = "has successfully attended a training workshop entitled"
	DefaultVerificationBaseURL = "https://verify.example.com/certificate/"
)

// DefaultFields is the layout attached to a freshly uploaded background.
func DefaultFields() []Field {
	return []Field{
		{
			ID:       "name",
			Kind:     FieldParticipantName,
			Position: Position{X: 50, Y: 45},
			Size:     Size{Width: 300, Height: 40},
			Style: &TextStyle{
				FontSize:   32,
				FontFamily: DefaultFontFamily,
				Color:      "#1e3a5f",
				FontWeight: WeightBold,
				TextAlign:  AlignCenter,
			},
			Visible: true,
		},
		{
			ID:       "sentence",
			Kind:     FieldFixedSentence,
			Position: Position{X: 50, Y: 55},
			Size:     Size{Width: 400, Height: 30},
			Style: &TextStyle{
				FontSize:   16,
				FontFamily: DefaultFontFamily,
				Color:      "#4a5568",
				FontWeight: WeightNormal,
				TextAlign:  AlignCenter,
			},
			Visible: true,
		},
		{
			ID:       "title",
			Kind:     FieldCourseTitle,
			Position: Position{X: 50, Y: 62},
			Size:     Size{Width: 350, Height: 35},
			Style: &TextStyle{
				FontSize:   24,
				FontFamily: DefaultFontFamily,
				Color:      "#1e3a5f",
				FontWeight: WeightBold,
				TextAlign:  AlignCenter,
			},
			Visible: true,
		},
		{
			ID:       "certificateId",
			Kind:     FieldCertificateID,
			Position: Position{X: 85, Y: 90},
			Size:     Size{Width: 120, Height: 20},
			Style: &TextStyle{
				FontSize:   10,
				FontFamily: DefaultFontFamily,
				Color:      "#718096",
				FontWeight: WeightNormal,
				TextAlign:  AlignRight,
			},
			Visible: true,
		},
		{
			ID:       "qrcode",
			Kind:     FieldVerificationCode,
			Position: Position{X: 10, Y: 85},
			Size:     Size{Width: 60, Height: 60},
			Visible:  true,
		},
	}
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		IDPrefix:            DefaultIDPrefix,
		FixedSentence:       DefaultFixedSentence,
		VerificationBaseURL: DefaultVerificationBaseURL,
	}
}

// SampleParticipant stands in for a real participant when previewing a
// template before any list has been uploaded.
func SampleParticipant(idPrefix string) Participant {
	if idPrefix == "" {
		idPrefix = DefaultIDPrefix
	}
	return Participant{
		ID:             "sample",
		Name:           "Participant Name",
		VerificationID: idPrefix + "-SAMPLE-0001",
	}
}
