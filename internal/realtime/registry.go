package realtime

import "sync"

// Registry tracks the single live session per user. Membership is
// mutated only by the connection gateway; the dispatcher reads it.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Put associates s with userID. Any previously registered session for
// the same user is closed before Put returns, so the registry never
// holds two reachable handles for one user.
func (r *Registry) Put(userID string, s Session) {
	r.mu.Lock()
	prev := r.sessions[userID]
	r.sessions[userID] = s
	r.mu.Unlock()

	if prev != nil && prev != s {
		prev.Close("connection replaced")
	}
}

// Remove deletes the entry for userID only when s is the session that
// is currently registered. A late close event from an evicted session
// must not wipe out the registration of its replacement.
func (r *Registry) Remove(userID string, s Session) {
	r.mu.Lock()
	if cur, ok := r.sessions[userID]; ok && cur == s {
		delete(r.sessions, userID)
	}
	r.mu.Unlock()
}

func (r *Registry) Get(userID string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[userID]
	r.mu.RUnlock()
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
