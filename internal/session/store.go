package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

const DefaultTTL = 2 * time.Hour

// Store keeps sessions in memory and drops them after ttl without access.
type Store struct {
	cache    *gocache.Cache
	ttl      time.Duration
	defaults model.GenerationConfig
}

func NewStore(ttl time.Duration, defaults model.GenerationConfig) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &Store{
		cache:    gocache.New(ttl, ttl/2),
		ttl:      ttl,
		defaults: defaults,
	}
	store.cache.OnEvicted(func(id string, _ interface{}) {
		slog.Debug("Session expired", "session_id", id)
	})
	return store
}

func (s *Store) Create() *Session {
	sess := New(uuid.NewString(), s.defaults)
	s.cache.Set(sess.ID, sess, s.ttl)
	slog.Info("Session created", "session_id", sess.ID)
	return sess
}

// Get returns the session and extends its lifetime.
func (s *Store) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	v, found := s.cache.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	sess := v.(*Session)
	s.cache.Set(id, sess, s.ttl)
	return sess, nil
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}
