package bot

import (
	"sync"

	"stock-sentry/internal/domain"
)

// Step is the conversation position of a single user.
type Step int

const (
	StepSelectingAction Step = iota
	StepAwaitingSymbol
	StepAwaitingAlertSpec
)

// Action tags the menu choice a user made; the values double as callback
// payloads on the inline keyboard.
type Action string

const (
	ActionNone           Action = ""
	ActionPrice          Action = "price"
	ActionChart          Action = "chart"
	ActionSetAlert       Action = "alert"
	ActionChangeCurrency Action = "change_currency"
	ActionHelp           Action = "help"
	ActionBack           Action = "back"
)

// Session is one user's conversational state. Sessions are created lazily on
// first contact and live for the process lifetime.
type Session struct {
	Step     Step
	Pending  Action
	Currency domain.CurrencyCode
}

func defaultSession() Session {
	return Session{
		Step:     StepSelectingAction,
		Pending:  ActionNone,
		Currency: domain.CurrencyUSD,
	}
}

// SessionStore keeps per-user sessions. The transport dispatches one update
// at a time per chat, but the watcher and ops endpoints read concurrently,
// so access stays behind a lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]Session),
	}
}

// Get returns the user's session, materializing the default on first use.
func (s *SessionStore) Get(userID int64) Session {
	s.mu.RLock()
	ses, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return ses
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ses, ok = s.sessions[userID]; ok {
		return ses
	}
	ses = defaultSession()
	s.sessions[userID] = ses
	return ses
}

func (s *SessionStore) Set(userID int64, ses Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = ses
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
