// Package app wires the storage port, audit recorder, identity service and
// task stores into the one object every front end talks to.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/audit"
	"github.com/balkashynov/tally/internal/auth"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/tasks"
)

// ErrForbidden is returned when a non-admin session reaches an admin action
var ErrForbidden = errors.New("admin only")

// App is the plain interface behind the CLI, the TUI and the HTTP API
type App struct {
	Store    db.Store
	Auth     *auth.Service
	Audit    *audit.Recorder
	Sessions *auth.SessionKeeper
	Logger   *zap.Logger

	ids *ids.Generator
}

// New builds an App on store
func New(store db.Store, log *zap.Logger) *App {
	gen := ids.New()
	recorder := audit.NewRecorder(store, gen, log)
	return &App{
		Store:    store,
		Auth:     auth.NewService(auth.NewDirectory(store), recorder, log),
		Audit:    recorder,
		Sessions: auth.NewSessionKeeper(store),
		Logger:   log,
		ids:      gen,
	}
}

// Tasks returns the task store of username
func (a *App) Tasks(username string) *tasks.Store {
	return tasks.New(a.Store, a.Audit, a.ids, a.Logger, username)
}

// Login authenticates and persists the session in the store
func (a *App) Login(ctx context.Context, username, password string) (models.Session, error) {
	session, err := a.Auth.Authenticate(ctx, username, password)
	if err != nil {
		return models.Session{}, err
	}
	if err := a.Sessions.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Logout records the logout of the persisted session and clears it
func (a *App) Logout(ctx context.Context) (models.Session, error) {
	session, err := a.Sessions.Current(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if err := a.Auth.Logout(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, a.Sessions.Clear(ctx)
}

// RequireAdmin rejects sessions that would not see the admin panel
func RequireAdmin(session models.Session) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
