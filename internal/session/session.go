package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

var (
	ErrNotFound             = errors.New("session not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrNoParticipantsLoaded = errors.New("no participants loaded")
)

// Session holds one user's pipeline state: the template being edited, the
// participant list, the generation config and the batch progress.
// Readers always get copies.
type Session struct {
	ID string

	mu           sync.RWMutex
	template     *model.Template
	participants []model.Participant
	config       model.GenerationConfig
	defaults     model.GenerationConfig
	tracker      *batch.Tracker
}

func New(id string, defaults model.GenerationConfig) *Session {
	return &Session{
		ID:       id,
		config:   defaults,
		defaults: defaults,
		tracker:  batch.NewTracker(nil),
	}
}

func (s *Session) Template() *model.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template.Clone()
}

func (s *Session) SetTemplate(tmpl *model.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = tmpl
}

// EditTemplate applies fn to a copy of the template and keeps the copy only
// if fn succeeds, so a failed edit changes nothing. It returns a copy of the
// result.
func (s *Session) EditTemplate(fn func(tmpl *model.Template) error) (*model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return nil, batch.ErrNoTemplate
	}
	candidate := s.template.Clone()
	if err := fn(candidate); err != nil {
		return nil, err
	}
	s.template = candidate
	return candidate.Clone(), nil
}

func (s *Session) Participants() []model.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Participant, len(s.participants))
	copy(out, s.participants)
	return out
}

func (s *Session) SetParticipants(participants []model.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = participants
}

func (s *Session) Participant(index int) (model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.participants) == 0 {
		return model.Participant{}, ErrNoParticipantsLoaded
	}
	if index < 0 || index >= len(s.participants) {
		return model.Participant{}, fmt.Errorf("%w: index %d", ErrParticipantNotFound, index)
	}
	return s.participants[index], nil
}

// MarkGenerated flags the given participant ids as generated.
func (s *Session) MarkGenerated(ids ...string) {
	if len(ids) == 0 {
		return
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if set[s.participants[i].ID] {
			s.participants[i].Generated = true
		}
	}
}

func (s *Session) Config() model.GenerationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Session) SetConfig(cfg model.GenerationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *Session) Tracker() *batch.Tracker {
	return s.tracker
}

func (s *Session) Progress() model.BatchProgress {
	return s.tracker.Snapshot()
}

// Snapshot returns independent copies of everything a generation run reads.
func (s *Session) Snapshot() (*model.Template, model.GenerationConfig, []model.Participant) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participants := make([]model.Participant, len(s.participants))
	copy(participants, s.participants)
	return s.template.Clone(), s.config, participants
}

// Reset drops the template and participants and restores the default config.
// It fails while a batch is running.
func (s *Session) Reset() error {
	if err := s.tracker.Reset(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = nil
	s.participants = nil
	s.config = s.defaults
	return nil
}
