// Package session holds the current identity/credential pair and its
// persistence across restarts. It is the single writer of both values:
// every other component only reads, either through User or through the
// api.TokenSource surface (Token).
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// storageKey names the single durable record. Identity and credential are
// serialized as one unit so a reader can never observe one without the other.
const storageKey = "ov_session.json"

type record struct {
	User  models.User `json:"user"`
	Token string      `json:"access_token"`
}

// Store is the in-memory session with file-backed durability. The two
// observable states are Anonymous and Authenticated; Establish and Clear
// are the only transitions between them.
type Store struct {
	mu    sync.RWMutex
	path  string
	user  *models.User
	token string
	log   logging.Logger
}

func NewStore(stateDir string, log logging.Logger) *Store {
	return &Store{path: filepath.Join(stateDir, storageKey), log: log}
}

// Restore attempts to load a previously persisted pair. Absence, corruption,
// a half-missing record, or an expired JWT credential all yield "no session";
// none of them is a reportable error.
func (s *Store) Restore() (*models.User, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn(context.Background(), "discarding corrupt session record", "path", s.path)
		return nil, "", false
	}
	if rec.Token == "" || rec.User.ID == "" {
		return nil, "", false
	}
	if tokenExpired(rec.Token) {
		s.log.Info(context.Background(), "discarding expired session", "user", rec.User.Username)
		_ = os.Remove(s.path)
		return nil, "", false
	}
	if rec.User.SubscribedTo == nil {
		rec.User.SubscribedTo = []string{}
	}

	s.user = &rec.User
	s.token = rec.Token

	user := rec.User
	return &user, rec.Token, true
}

// tokenExpired reports whether the credential is a JWT whose exp claim has
// passed. Tokens that do not parse as JWTs are treated as opaque and kept.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Establish sets identity and credential together, in memory and on disk.
// The durable write goes through a temp file and rename so a concurrent
// reader of the file never sees a torn record.
func (s *Store) Establish(user models.User, token string) error {
	if user.SubscribedTo == nil {
		user.SubscribedTo = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.token = token
	return s.persistLocked()
}

// Clear removes both halves of the session from memory and durable storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}

// Patch merges a partial identity update into the current session and
// re-persists it. Calling Patch without an active session is a caller
// contract violation and is silently ignored.
func (s *Store) Patch(patch models.ProfilePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	patch.Apply(s.user)
	if err := s.persistLocked(); err != nil {
		s.log.Warn(context.Background(), "session re-persist failed", "err", err)
	}
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(record{User: *s.user, Token: s.token})
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit session record: %w", err)
	}
	return nil
}

// User returns a copy of the current identity, if any.
func (s *Store) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, false
	}
	user := *s.user
	return &user, true
}

// Token returns the current credential. It satisfies api.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
