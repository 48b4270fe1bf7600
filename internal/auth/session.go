package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

// ErrNoSession means nobody is logged in, or the session expired
var ErrNoSession = errors.New("not logged in")

// SessionKeeper persists the current session under the "user" key for seven days
type SessionKeeper struct {
	store db.Store
}

// NewSessionKeeper creates a SessionKeeper over store
func NewSessionKeeper(store db.Store) *SessionKeeper {
	return &SessionKeeper{store: store}
}

// Save persists session, replacing any previous one
func (k *SessionKeeper) Save(ctx context.Context, session models.Session) error {
	if err := db.SetJSON(ctx, k.store, db.KeySession, session, db.SessionTTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the persisted session or ErrNoSession
func (k *SessionKeeper) Current(ctx context.Context) (models.Session, error) {
	var session models.Session
	if err := db.GetJSON(ctx, k.store, db.KeySession, &session); err != nil {
		return models.Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	if session.Username == "" {
		return models.Session{}, ErrNoSession
	}
	return session, nil
}

// Clear forgets the persisted session
func (k *SessionKeeper) Clear(ctx context.Context) error {
	return k.store.Remove(ctx, db.KeySession)
}
