package concierge

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// SessionStore keeps live sessions in memory with a sliding TTL. Sessions
// are deliberately never persisted; abandoning the tab simply lets the entry
// expire.
type SessionStore struct {
	sessions *cache.Cache
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: cache.New(ttl, ttl/2),
		ttl:      ttl,
	}
}

func (s *SessionStore) Get(id uuid.UUID) (*types.ConciergeSession, bool) {
	v, ok := s.sessions.Get(id.String())
	if !ok {
		return nil, false
	}
	session, ok := v.(*types.ConciergeSession)
	return session, ok
}

// Save writes the session back and refreshes its TTL.
func (s *SessionStore) Save(session *types.ConciergeSession) {
	session.UpdatedAt = time.Now()
	s.sessions.Set(session.ID.String(), session, s.ttl)
}
