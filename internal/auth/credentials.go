// Package auth validates credentials, manages the user directory and keeps
// the persisted session.
package auth

import (
	"context"
	"fmt"
	"sort"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

// CredentialSource resolves a username/password pair to a session.
// ok is false when the source does not recognise the pair.
type CredentialSource interface {
	Lookup(ctx context.Context, username, password string) (session models.Session, ok bool, err error)
}

// Bootstrap admin account, always available and never persisted.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// BootstrapAdmin is the hardcoded admin credential
type BootstrapAdmin struct{}

// Lookup matches the exact admin pair
func (BootstrapAdmin) Lookup(_ context.Context, username, password string) (models.Session, bool, error) {
	if username == AdminUsername && password == AdminPassword {
		return models.Session{Username: AdminUsername, Role: models.RoleAdmin}, true, nil
	}
	return models.Session{}, false, nil
}

// Directory is the persisted user directory under the "users" key
type Directory struct {
	store db.Store
}

// NewDirectory creates a Directory over store
func NewDirectory(store db.Store) *Directory {
	return &Directory{store: store}
}

// Load returns the whole directory, empty when nothing is stored yet
func (d *Directory) Load(ctx context.Context) (models.Directory, error) {
	users := models.Directory{}
	if err := db.GetJSON(ctx, d.store, db.KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to read user directory: %w", err)
	}
	return users, nil
}

// Save rewrites the whole directory
func (d *Directory) Save(ctx context.Context, users models.Directory) error {
	if err := db.SetJSON(ctx, d.store, db.KeyUsers, users, 0); err != nil {
		return fmt.Errorf("failed to write user directory: %w", err)
	}
	return nil
}

// Lookup finds username in the directory and compares the stored password
func (d *Directory) Lookup(ctx context.Context, username, password string) (models.Session, bool, error) {
	users, err := d.Load(ctx)
	if err != nil {
		return models.Session{}, false, err
	}
	rec, ok := users[username]
	if !ok || rec.Password != password {
		return models.Session{}, false, nil
	}
	return models.Session{Username: username, Role: rec.Role}, true, nil
}

// UserInfo is a directory listing row
type UserInfo struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// List returns directory users sorted by username
func (d *Directory) List(ctx context.Context) ([]UserInfo, error) {
	users, err := d.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserInfo, 0, len(users))
	for name, rec := range users {
		out = append(out, UserInfo{Username: name, Role: rec.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
