package session

import (
	"sync"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
)

// Store holds the current vendor identity. It is constructed once in main and
// handed to the auth service (writer) and the product side (readers), instead
// of every component reaching into a process-global auth object.
type Store struct {
	mu      sync.RWMutex
	current *domain.Session
	cancels map[uint64]func()
	nextID  uint64
}

func NewStore() *Store {
	return &Store{cancels: make(map[uint64]func())}
}

func (s *Store) Set(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &sess
}

// Clear drops the identity and cancels every watch registered against the
// session, so a signed-out vendor has no live feed left running.
func (s *Store) Clear() {
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = make(map[uint64]func())
	s.current = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *Store) IsLoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// RegisterCancel ties a cancellation to the session lifetime. The returned
// release func detaches it again once the watch ends on its own. Entries are
// keyed by a token unique across sessions, so a release arriving late, after
// the session has been cleared and a new one registered its own watches,
// cannot touch the new session's entries.
func (s *Store) RegisterCancel(cancel func()) (release func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.cancels[id] = cancel
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.cancels, id)
	}
}
