package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pingrtc/ping/internal/core"
	"github.com/pingrtc/ping/internal/domain"
)

// Registry is the connection manager. It owns connection identity and the
// per-connection display name; the room registry only keeps back-references
// by ClientID and looks sessions up here.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ClientID]core.MemberSession
	users    map[domain.ClientID]*domain.User
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ClientID]core.MemberSession),
		users:    make(map[domain.ClientID]*domain.User),
	}
}

// Bind registers a fresh connection and assigns its guest identity.
// Returns a snapshot of the new user.
func (r *Registry) Bind(sid domain.ClientID, sess core.MemberSession) domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := domain.NewGuest(sid)
	r.sessions[sid] = sess
	r.users[sid] = u
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("name", u.Name).Msg("bound connection")
	return *u
}

// Unbind discards all state for a connection. Callers run room cleanup
// first; after this returns the identifier is dead.
func (r *Registry) Unbind(sid domain.ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	delete(r.users, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbound connection")
}

func (r *Registry) Session(sid domain.ClientID) (core.MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sid]
	return s, ok
}

// SetName updates the display name. Blank input silently keeps the
// previous name, per the join contract.
func (r *Registry) SetName(sid domain.ClientID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[sid]; ok {
		u.SetName(name)
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("name", u.Name).Msg("updated name")
	}
}

// Name returns the display name for a connection, falling back to a plain
// "Guest" for identifiers it no longer tracks.
func (r *Registry) Name(sid domain.ClientID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[sid]; ok {
		return u.Name
	}
	return "Guest"
}
