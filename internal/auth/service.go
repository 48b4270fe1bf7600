package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/audit"
	"github.com/balkashynov/tally/internal/models"
)

// User-facing messages.
const (
	msgEmptyCredentials   = "Username and password cannot be empty"
	msgInvalidCredentials = "Invalid username or password"
	msgUsernameTaken      = "Username already exists"
	msgUnknownRole        = "Role must be admin or user"
)

// Service handles authentication, user creation and logout
type Service struct {
	sources   []CredentialSource
	directory *Directory
	audit     *audit.Recorder
	log       *zap.Logger
}

// NewService creates a Service that tries the bootstrap admin first, then the directory
func NewService(directory *Directory, recorder *audit.Recorder, log *zap.Logger) *Service {
	return &Service{
		sources:   []CredentialSource{BootstrapAdmin{}, directory},
		directory: directory,
		audit:     recorder,
		log:       log,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Authenticate checks the credential sources in order and records a login
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.Session, error) {
	if blank(username) || blank(password) {
		return models.Session{}, &models.Error{Kind: models.ErrInvalidCredentials, Message: msgEmptyCredentials}
	}

	for _, src := range s.sources {
		session, ok, err := src.Lookup(ctx, username, password)
		if err != nil {
			return models.Session{}, err
		}
		if !ok {
			continue
		}

		if _, err := s.audit.Record(ctx, session.Username, models.ActionLogin, audit.LoginDetails(session.Username)); err != nil {
			return models.Session{}, err
		}
		s.log.Info("user logged in", zap.String("username", session.Username), zap.String("role", string(session.Role)))
		return session, nil
	}

	s.log.Info("login rejected", zap.String("username", username))
	return models.Session{}, &models.Error{Kind: models.ErrInvalidCredentials, Message: msgInvalidCredentials}
}

// CreateUser adds username to the directory. Role checks on the actor are the
// caller's job.
func (s *Service) CreateUser(ctx context.Context, actor models.Session, username, password string, role models.Role) error {
	if blank(username) || blank(password) {
		return models.Validation(msgEmptyCredentials)
	}
	if _, err := models.ParseRole(string(role)); err != nil {
		return models.Validation(msgUnknownRole)
	}

	users, err := s.directory.Load(ctx)
	if err != nil {
		return err
	}
	if _, exists := users[username]; exists {
		return &models.Error{Kind: models.ErrDuplicateUser, Message: msgUsernameTaken}
	}

	users[username] = models.UserRecord{Password: password, Role: role}
	if err := s.directory.Save(ctx, users); err != nil {
		return err
	}

	if _, err := s.audit.Record(ctx, actor.Username, models.ActionCreateUser, audit.CreateUserDetails(username, role)); err != nil {
		return err
	}
	s.log.Info("user created",
		zap.String("actor", actor.Username),
		zap.String("username", username),
		zap.String("role", string(role)),
	)
	return nil
}

// Logout records the logout; clearing the persisted session is up to the caller
func (s *Service) Logout(ctx context.Context, session models.Session) error {
	if session.Username == "" {
		return errors.New("no session to log out")
	}
	if _, err := s.audit.Record(ctx, session.Username, models.ActionLogout, audit.LogoutDetails(session.Username)); err != nil {
		return err
	}
	s.log.Info("user logged out", zap.String("username", session.Username))
	return nil
}

// Users lists the directory
func (s *Service) Users(ctx context.Context) ([]UserInfo, error) {
	return s.directory.List(ctx)
}
