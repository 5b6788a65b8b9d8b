// Package session holds the authentication state of the client: the current
// bearer token, an optional persistent copy of it, and a stream of state
// changes for observers.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/kheyfetsdan/wordsaveriii/internal/events"
)

// State is what observers see.
type State struct {
	Authenticated bool
}

// TokenStore persists the token between runs.
type TokenStore interface {
	// Load returns the stored token, or ErrNoToken.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ErrNoToken is returned by TokenStore.Load when nothing is stored.
var ErrNoToken = errors.New("no stored token")

// Session is the client's authentication state. It is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	token  string
	store  TokenStore
	states *events.Broadcaster[State]
	logger *slog.Logger
}

// New creates a signed-out session. store may be nil.
func New(store TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "session")
	return &Session{
		store:  store,
		states: events.NewBroadcasterWith(State{}, logger),
		logger: logger,
	}
}

// Token returns the current token. The second result is false when signed out.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Restore loads a persisted token. A missing token is not an error.
func (s *Session) Restore() error {
	if s.store == nil {
		return nil
	}

	token, err := s.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}
	s.set(token)
	return nil
}

// SignIn stores token and notifies observers. An empty token signs out.
func (s *Session) SignIn(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.SignOut()
	}

	if s.store != nil {
		if err := s.store.Save(token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}
	s.set(token)
	s.logger.Debug("signed in")
	return nil
}

// SignOut forgets the token and notifies observers. The in-memory state is
// cleared even when the stored copy cannot be removed.
func (s *Session) SignOut() error {
	s.set("")
	s.logger.Debug("signed out")

	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return fmt.Errorf("clear stored token: %w", err)
		}
	}
	return nil
}

// Subscribe returns a channel of state changes starting with the current
// state, and a function that unsubscribes and closes it.
func (s *Session) Subscribe() (<-chan State, func()) {
	return s.states.Subscribe()
}

func (s *Session) set(token string) {
	s.mu.Lock()
	changed := (s.token != "") != (token != "")
	s.token = token
	s.mu.Unlock()

	if changed {
		s.states.Publish(State{Authenticated: token != ""})
	}
}
