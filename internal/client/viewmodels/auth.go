package viewmodels

import (
	"context"
	"fmt"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// Auth is the session-facing view-model: login, signup, and logout, each
// keeping identity and credential in lockstep through the session store.
type Auth struct {
	api     api.Client
	session *session.Store
	log     logging.Logger
}

func NewAuth(client api.Client, store *session.Store, log logging.Logger) *Auth {
	return &Auth{api: client, session: store, log: log}
}

// Login exchanges credentials for a session. Failures are returned for
// form-level display and are never retried automatically.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s: %w", userMessage(err, "invalid email or password"), err)
	}
	if err := a.session.Establish(res.User, res.Token); err != nil {
		a.log.Warn(ctx, "session persist failed", "err", err)
	}
	return nil
}

// Signup creates an account and establishes the returned session.
func (a *Auth) Signup(ctx context.Context, email, username, password string) error {
	res, err := a.api.Signup(ctx, email, username, password)
	if err != nil {
		return fmt.Errorf("%s: %w", userMessage(err, "could not create the account"), err)
	}
	if err := a.session.Establish(res.User, res.Token); err != nil {
		a.log.Warn(ctx, "session persist failed", "err", err)
	}
	return nil
}

// Logout drops the session from memory and durable storage.
func (a *Auth) Logout() error {
	return a.session.Clear()
}

// Restore re-establishes a persisted session at startup, if one survives.
func (a *Auth) Restore() (*models.User, bool) {
	user, _, ok := a.session.Restore()
	return user, ok
}

func (a *Auth) User() (*models.User, bool) { return a.session.User() }

func (a *Auth) IsAuthenticated() bool { return a.session.IsAuthenticated() }
