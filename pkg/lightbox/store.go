package lightbox

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"craft-gallery/pkg/models"
)

// ErrSessionNotFound is returned for an unknown or expired session id
var ErrSessionNotFound = errors.New("lightbox session not found")

// Session is a viewer opened by a client, addressed by ID
type Session struct {
	ID string

	mu     sync.Mutex
	viewer *Viewer
}

// Do runs fn against the session's viewer and returns the resulting frame
func (s *Session) Do(fn func(v *Viewer)) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn(s.viewer)
	}
	return s.viewer.Frame()
}

// Frame returns what the session's overlay displays
func (s *Session) Frame() Frame {
	return s.Do(nil)
}

// Store keeps open sessions for a sliding TTL. The cache is safe for
// concurrent use on its own; mu only makes Get's read-then-refresh atomic
// with respect to Delete, so a deleted session is never refreshed back.
type Store struct {
	sessions *cache.Cache
	mu       sync.Mutex
}

// NewStore creates a store whose sessions expire after ttl without use
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: cache.New(ttl, 2*ttl),
	}
}

// Create opens a viewer on tiles at id and registers it under a new id
func (st *Store) Create(tiles []models.Tile, id string) (*Session, error) {
	v := NewViewer()
	if err := v.Open(tiles, id); err != nil {
		return nil, err
	}

	sess := &Session{ID: uuid.NewString(), viewer: v}
	st.sessions.Set(sess.ID, sess, cache.DefaultExpiration)
	return sess, nil
}

// Get returns the session and extends its lifetime
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	item, found := st.sessions.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	sess := item.(*Session)
	st.sessions.Set(id, sess, cache.DefaultExpiration)
	return sess, nil
}

// Delete forgets the session
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions.Delete(id)
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	return st.sessions.ItemCount()
}
