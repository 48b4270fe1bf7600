package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/balkashynov/tally/internal/audit"
	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/models"
)

var adminSession = models.Session{Username: AdminUsername, Role: models.RoleAdmin}

func setupService(t *testing.T) (*Service, *audit.Recorder, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	log := zaptest.NewLogger(t)
	recorder := audit.NewRecorder(store, ids.New(), log)
	return NewService(NewDirectory(store), recorder, log), recorder, store
}

func auditActions(t *testing.T, r *audit.Recorder) []models.Action {
	t.Helper()
	entries, err := r.List(context.Background())
	require.NoError(t, err)
	out := make([]models.Action, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func TestAuthenticate_BootstrapAdmin(t *testing.T) {
	svc, recorder, store := setupService(t)
	ctx := context.Background()

	// A directory entry named admin does not shadow the hardcoded credential
	require.NoError(t, db.SetJSON(ctx, store, db.KeyUsers, models.Directory{
		"admin": {Password: "other", Role: models.RoleUser},
	}, 0))

	session, err := svc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, adminSession, session)
	assert.Equal(t, []models.Action{models.ActionLogin}, auditActions(t, recorder))
}

func TestAuthenticate_DirectoryUser(t *testing.T) {
	svc, _, store := setupService(t)
	ctx := context.Background()
	require.NoError(t, db.SetJSON(ctx, store, db.KeyUsers, models.Directory{
		"bob": {Password: "pw", Role: models.RoleUser},
		"eve": {Password: "pw2", Role: models.RoleAdmin},
	}, 0))

	session, err := svc.Authenticate(ctx, "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.Session{Username: "bob", Role: models.RoleUser}, session)

	session, err = svc.Authenticate(ctx, "eve", "pw2")
	require.NoError(t, err)
	assert.True(t, session.IsAdmin())
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		kind     error
		msg      string
	}{
		{"empty username", "", "pw", models.ErrInvalidCredentials, "Username and password cannot be empty"},
		{"whitespace username", "  ", "pw", models.ErrInvalidCredentials, "Username and password cannot be empty"},
		{"whitespace password", "bob", "   ", models.ErrInvalidCredentials, "Username and password cannot be empty"},
		{"unknown user", "nobody", "pw", models.ErrInvalidCredentials, "Invalid username or password"},
		{"wrong password", "bob", "nope", models.ErrInvalidCredentials, "Invalid username or password"},
		{"case sensitive username", "Bob", "pw", models.ErrInvalidCredentials, "Invalid username or password"},
		{"wrong admin password", "admin", "admin", models.ErrInvalidCredentials, "Invalid username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, recorder, store := setupService(t)
			ctx := context.Background()
			require.NoError(t, db.SetJSON(ctx, store, db.KeyUsers, models.Directory{
				"bob": {Password: "pw", Role: models.RoleUser},
			}, 0))

			_, err := svc.Authenticate(ctx, tt.username, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.NotErrorIs(t, err, models.ErrValidation)
			assert.EqualError(t, err, tt.msg)
			assert.Empty(t, auditActions(t, recorder), "failed logins are not audited")
		})
	}
}

func TestCreateUser_IntoEmptyDirectory(t *testing.T) {
	svc, recorder, store := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, adminSession, "bob", "pw", models.RoleUser))

	users := models.Directory{}
	require.NoError(t, db.GetJSON(ctx, store, db.KeyUsers, &users))
	assert.Equal(t, models.Directory{"bob": {Password: "pw", Role: models.RoleUser}}, users)

	entries, err := recorder.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreateUser, entries[0].Action)
	assert.Equal(t, "admin", entries[0].Username)
	assert.Equal(t, "Created user bob with role user", entries[0].Details)

	// The new account can log in
	session, err := svc.Authenticate(ctx, "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, session.Role)
}

func TestCreateUser_Duplicate(t *testing.T) {
	svc, recorder, store := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateUser(ctx, adminSession, "bob", "pw", models.RoleUser))

	err := svc.CreateUser(ctx, adminSession, "bob", "other", models.RoleAdmin)
	assert.ErrorIs(t, err, models.ErrDuplicateUser)
	assert.EqualError(t, err, "Username already exists")

	users := models.Directory{}
	require.NoError(t, db.GetJSON(ctx, store, db.KeyUsers, &users))
	assert.Equal(t, models.Directory{"bob": {Password: "pw", Role: models.RoleUser}}, users)
	assert.Len(t, auditActions(t, recorder), 1)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreateUser(ctx, adminSession, " ", "pw", models.RoleUser), models.ErrValidation)
	assert.ErrorIs(t, svc.CreateUser(ctx, adminSession, "bob", "", models.RoleUser), models.ErrValidation)
	assert.ErrorIs(t, svc.CreateUser(ctx, adminSession, "bob", "pw", models.Role("root")), models.ErrValidation)
}

func TestLogout(t *testing.T) {
	svc, recorder, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, models.Session{Username: "bob", Role: models.RoleUser}))
	entries, err := recorder.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionLogout, entries[0].Action)
	assert.Equal(t, "User bob logged out", entries[0].Details)

	assert.Error(t, svc.Logout(ctx, models.Session{}))
}

func TestUsers_Sorted(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateUser(ctx, adminSession, "zoe", "pw", models.RoleUser))
	require.NoError(t, svc.CreateUser(ctx, adminSession, "amy", "pw", models.RoleAdmin))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []UserInfo{
		{Username: "amy", Role: models.RoleAdmin},
		{Username: "zoe", Role: models.RoleUser},
	}, users)
}
