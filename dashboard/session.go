package dashboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sartorproj/inflasi/forecast"
)

const (
	sessionCookie = "inflasi_session"
	sessionTTL    = 24 * time.Hour
)

// Session is the widget state remembered for one browser.
type Session struct {
	Page      Page
	Range     *DateRange
	Params    forecast.Params
	HasParams bool
	Last      *forecast.Result

	seen time.Time
}

// SessionStore keeps sessions in memory, keyed by a random cookie value.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Load returns the session id and a copy of its state, issuing a new cookie
// when the request carries none or an unknown one.
func (s *SessionStore) Load(w http.ResponseWriter, r *http.Request) (string, Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok {
			sess.seen = now
			return c.Value, *sess
		}
	}

	s.prune(now)
	id := uuid.NewString()
	s.sessions[id] = &Session{seen: now}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, Session{seen: now}
}

// Save stores sess under id.
func (s *SessionStore) Save(id string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.seen = s.now()
	s.sessions[id] = &sess
}

// Update applies fn to the stored session under the store lock. Unknown ids
// are ignored.
func (s *SessionStore) Update(id string, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		fn(sess)
		sess.seen = s.now()
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) prune(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.seen) > sessionTTL {
			delete(s.sessions, id)
		}
	}
}
