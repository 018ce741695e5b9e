package model

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTemplate() *Template {
	return NewTemplate("tpl", "bg", image.NewNRGBA(image.Rect(0, 0, 1000, 707)), DefaultFields())
}

func TestNewTemplate(t *testing.T) {
	tmpl := newTestTemplate()
	assert.Equal(t, 1000, tmpl.Width)
	assert.Equal(t, 707, tmpl.Height)
	assert.True(t, tmpl.IsLandscape())

	portrait := NewTemplate("p", "bg", image.NewNRGBA(image.Rect(0, 0, 600, 848)), nil)
	assert.False(t, portrait.IsLandscape())
}

func TestTemplate_MoveField(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		expect Position
	}{
		{"inside", 20, 30, Position{X: 20, Y: 30}},
		{"negative", -4, 10, Position{X: 0, Y: 10}},
		{"past edge", 99.5, 100, Position{X: 95, Y: 95}},
		{"edge", 95, 0, Position{X: 95, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := newTestTemplate()
			require.NoError(t, tmpl.MoveField("title", tt.x, tt.y))
			f, ok := tmpl.Field("title")
			require.True(t, ok)
			assert.Equal(t, tt.expect, f.Position)
		})
	}

	assert.ErrorIs(t, newTestTemplate().MoveField("nope", 1, 1), ErrFieldNotFound)
}

func TestTemplate_ResizeField(t *testing.T) {
	tmpl := newTestTemplate()

	require.NoError(t, tmpl.ResizeField("qrcode", 75))
	f, _ := tmpl.Field("qrcode")
	assert.Equal(t, Size{Width: 75, Height: 75}, f.Size)

	require.NoError(t, tmpl.ResizeField("name", 420))
	f, _ = tmpl.Field("name")
	assert.Equal(t, Size{Width: 420, Height: 40}, f.Size)

	assert.Error(t, tmpl.ResizeField("name", 0))
	assert.ErrorIs(t, tmpl.ResizeField("nope", 10), ErrFieldNotFound)
}

func TestTemplate_SetFieldStyle(t *testing.T) {
	tmpl := newTestTemplate()
	style := TextStyle{FontSize: 40, FontFamily: "Amiri", Color: "#000000", FontWeight: WeightNormal, TextAlign: AlignLeft}

	require.NoError(t, tmpl.SetFieldStyle("name", style))
	f, _ := tmpl.Field("name")
	assert.Equal(t, style, *f.Style)

	assert.Error(t, tmpl.SetFieldStyle("qrcode", style))
	require.NoError(t, tmpl.SetFieldVisible("qrcode", false))
	f, _ = tmpl.Field("qrcode")
	assert.False(t, f.Visible)
}

func TestTemplate_CloneIsIndependent(t *testing.T) {
	tmpl := newTestTemplate()
	clone := tmpl.Clone()

	require.NoError(t, clone.MoveField("name", 1, 1))
	clone.Fields[0].Style.Color = "#ff0000"

	f, _ := tmpl.Field("name")
	assert.Equal(t, Position{X: 50, Y: 45}, f.Position)
	assert.Equal(t, "#1e3a5f", f.Style.Color)
	assert.Same(t, tmpl.Background, clone.Background)

	var nilTemplate *Template
	assert.Nil(t, nilTemplate.Clone())
}

func TestGenerationConfig_Content(t *testing.T) {
	cfg := GenerationConfig{
		CourseTitle:         "Intro to Testing",
		IDPrefix:            "CERT",
		FixedSentence:       "has attended",
		VerificationBaseURL: "https://verify.example.com/certificate/",
	}
	p := Participant{ID: "p-1", Name: "Asma", VerificationID: "CERT-AB-0001"}

	tests := []struct {
		kind   FieldKind
		expect string
	}{
		{FieldParticipantName, "Asma"},
		{FieldCourseTitle, "Intro to Testing"},
		{FieldFixedSentence, "has attended"},
		{FieldCertificateID, "CERT-AB-0001"},
		{FieldVerificationCode, "https://verify.example.com/certificate/CERT-AB-0001"},
		{FieldKind("signature"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expect, cfg.Content(tt.kind, p))
		})
	}
}

func TestSampleParticipant(t *testing.T) {
	assert.Equal(t, "ACME-SAMPLE-0001", SampleParticipant("ACME").VerificationID)
	assert.Equal(t, "CERT-SAMPLE-0001", SampleParticipant("").VerificationID)
	assert.Equal(t, "Participant Name", SampleParticipant("").Name)
}
