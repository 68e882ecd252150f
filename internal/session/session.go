package session

import (
	"fmt"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
)

type claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

// Snapshot is an immutable view of the session at one point in time.
// NeedsOnboarding is a pure predicate over it; the routing owner decides
// what to do with the answer.
type Snapshot struct {
	LoggedIn  bool
	UserID    string
	Email     string
	ExpiresAt time.Time
	Profile   *model.User
}

// NeedsOnboarding reports whether a logged-in user still has to complete
// their profile. Anonymous sessions never need onboarding.
func NeedsOnboarding(s Snapshot) bool {
	if !s.LoggedIn {
		return false
	}
	if s.Profile == nil {
		return true
	}
	return s.Profile.Name == "" || len(s.Profile.Interests) == 0
}

// State holds the process-wide session. Listeners registered via OnChange
// run synchronously after every mutation, with the fresh snapshot.
type State struct {
	mu        sync.Mutex
	token     string
	snapshot  Snapshot
	listeners []func(Snapshot)
}

func NewState() *State {
	return &State{}
}

// SetToken installs a session token. The token is decoded without
// signature verification: the client only mines it for identity and
// expiry, the backend enforces validity on every call.
func (s *State) SetToken(token string) error {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(token, &claims{})
	if err != nil {
		return fmt.Errorf("%w: parse token: %v", appErr.ErrInvalid, err)
	}
	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.UserID == "" {
		return fmt.Errorf("%w: token has no user id", appErr.ErrInvalid)
	}
	snap := Snapshot{
		LoggedIn: true,
		UserID:   cl.UserID,
		Email:    cl.Email,
	}
	if cl.ExpiresAt != nil {
		snap.ExpiresAt = cl.ExpiresAt.Time
	}
	s.mu.Lock()
	s.token = token
	snap.Profile = s.snapshot.Profile
	s.snapshot = snap
	listeners := s.listeners
	s.mu.Unlock()
	notify(listeners, snap)
	return nil
}

// SetProfile attaches the fetched user profile to the session.
func (s *State) SetProfile(user *model.User) {
	s.mu.Lock()
	s.snapshot.Profile = user
	snap := s.snapshot
	listeners := s.listeners
	s.mu.Unlock()
	notify(listeners, snap)
}

func (s *State) Clear() {
	s.mu.Lock()
	s.token = ""
	s.snapshot = Snapshot{}
	snap := s.snapshot
	listeners := s.listeners
	s.mu.Unlock()
	notify(listeners, snap)
}

func (s *State) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *State) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
