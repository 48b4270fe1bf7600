package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/balkashynov/tally/internal/auth"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

func TestLogoutLoginRestoresTasks(t *testing.T) {
	ctx := context.Background()
	a := New(db.NewMemoryStore(), zaptest.NewLogger(t))

	admin, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, a.Auth.CreateUser(ctx, admin, "bob", "pw", models.RoleUser))
	_, err = a.Logout(ctx)
	require.NoError(t, err)

	bob, err := a.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	store := a.Tasks(bob.Username)
	task, err := store.AddPrimaryTask(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = store.AddSubTask(ctx, task.ID, "oat")
	require.NoError(t, err)
	before, err := store.Load(ctx)
	require.NoError(t, err)

	_, err = a.Logout(ctx)
	require.NoError(t, err)
	_, err = a.Sessions.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	bob, err = a.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	after, err := a.Tasks(bob.Username).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := a.Audit.List(ctx)
	require.NoError(t, err)
	var actions []models.Action
	for i := len(entries) - 1; i >= 0; i-- {
		actions = append(actions, entries[i].Action)
	}
	assert.Equal(t, []models.Action{
		models.ActionLogin, models.ActionCreateUser, models.ActionLogout,
		models.ActionLogin, models.ActionAddTask, models.ActionAddSubTask, models.ActionLogout,
		models.ActionLogin,
	}, actions)
}

func TestLogout_WithoutSession(t *testing.T) {
	a := New(db.NewMemoryStore(), zaptest.NewLogger(t))

	_, err := a.Logout(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestLogin_Failure_KeepsNoSession(t *testing.T) {
	ctx := context.Background()
	a := New(db.NewMemoryStore(), zaptest.NewLogger(t))

	_, err := a.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = a.Sessions.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(models.Session{Username: "admin", Role: models.RoleAdmin}))
	assert.ErrorIs(t, RequireAdmin(models.Session{Username: "bob", Role: models.RoleUser}), ErrForbidden)
}
