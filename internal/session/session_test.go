package session

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

func testTemplate() *model.Template {
	return model.NewTemplate("tpl", "background", image.NewNRGBA(image.Rect(0, 0, 800, 600)), model.DefaultFields())
}

func testParticipants() []model.Participant {
	return []model.Participant{
		{ID: "p-1", Name: "Asma", VerificationID: "CERT-T-0001"},
		{ID: "p-2", Name: "Omar", VerificationID: "CERT-T-0002"},
	}
}

func TestSession_TemplateIsCopied(t *testing.T) {
	s := New("s-1", model.DefaultGenerationConfig())
	assert.Nil(t, s.Template())

	s.SetTemplate(testTemplate())
	copy1 := s.Template()
	require.NoError(t, copy1.MoveField("name", 10, 10))

	field, ok := s.Template().Field("name")
	require.True(t, ok)
	assert.Equal(t, model.Position{X: 50, Y: 45}, field.Position, "editing a copy leaves the session alone")
}

func TestSession_EditTemplate(t *testing.T) {
	s := New("s-1", model.DefaultGenerationConfig())

	_, err := s.EditTemplate(func(tmpl *model.Template) error { return nil })
	assert.ErrorIs(t, err, batch.ErrNoTemplate)

	s.SetTemplate(testTemplate())
	updated, err := s.EditTemplate(func(tmpl *model.Template) error {
		return tmpl.MoveField("qrcode", 120, -5)
	})
	require.NoError(t, err)
	field, _ := updated.Field("qrcode")
	assert.Equal(t, model.Position{X: 95, Y: 0}, field.Position)

	_, err = s.EditTemplate(func(tmpl *model.Template) error {
		return tmpl.MoveField("missing", 1, 1)
	})
	assert.ErrorIs(t, err, model.ErrFieldNotFound)

	boom := errors.New("boom")
	_, err = s.EditTemplate(func(tmpl *model.Template) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSession_FailedEditChangesNothing(t *testing.T) {
	s := New("s-1", model.DefaultGenerationConfig())
	s.SetTemplate(testTemplate())
	before := s.Template()

	_, err := s.EditTemplate(func(tmpl *model.Template) error {
		if err := tmpl.MoveField("qrcode", 30, 85); err != nil {
			return err
		}
		if err := tmpl.SetFieldVisible("name", false); err != nil {
			return err
		}
		return tmpl.SetFieldStyle("qrcode", model.TextStyle{FontSize: 12})
	})
	require.Error(t, err)

	assert.Equal(t, before, s.Template())
	field, _ := s.Template().Field("qrcode")
	assert.Equal(t, model.Position{X: 10, Y: 85}, field.Position)
}

func TestSession_Participants(t *testing.T) {
	s := New("s-1", model.DefaultGenerationConfig())

	_, err := s.Participant(0)
	assert.ErrorIs(t, err, ErrNoParticipantsLoaded)

	s.SetParticipants(testParticipants())
	p, err := s.Participant(1)
	require.NoError(t, err)
	assert.Equal(t, "Omar", p.Name)

	_, err = s.Participant(2)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	_, err = s.Participant(-1)
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	list := s.Participants()
	list[0].Name = "Changed"
	assert.Equal(t, "Asma", s.Participants()[0].Name)

	s.MarkGenerated("p-2", "unknown")
	s.MarkGenerated()
	got := s.Participants()
	assert.False(t, got[0].Generated)
	assert.True(t, got[1].Generated)
}

func TestSession_SnapshotAndReset(t *testing.T) {
	defaults := model.DefaultGenerationConfig()
	s := New("s-1", defaults)
	s.SetTemplate(testTemplate())
	s.SetParticipants(testParticipants())
	cfg := defaults
	cfg.CourseTitle = "Intro to Testing"
	s.SetConfig(cfg)

	tmpl, gotCfg, list := s.Snapshot()
	require.NotNil(t, tmpl)
	assert.Equal(t, "Intro to Testing", gotCfg.CourseTitle)
	assert.Len(t, list, 2)

	require.NoError(t, s.Tracker().Start(2))
	assert.ErrorIs(t, s.Reset(), batch.ErrBatchRunning)
	assert.NotNil(t, s.Template(), "nothing is dropped while running")

	s.Tracker().Complete()
	require.NoError(t, s.Reset())
	assert.Nil(t, s.Template())
	assert.Empty(t, s.Participants())
	assert.Equal(t, defaults, s.Config())
	assert.Equal(t, model.StatusIdle, s.Progress().Status)
}

func TestStore(t *testing.T) {
	store := NewStore(time.Minute, model.DefaultGenerationConfig())

	_, err := store.Get("")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, store.Count())

	got, err := store.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, model.DefaultGenerationConfig(), got.Config())

	store.Delete(a.ID)
	_, err = store.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, store.Count())
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(50*time.Millisecond, model.DefaultGenerationConfig())
	sess := store.Create()

	time.Sleep(120 * time.Millisecond)
	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
