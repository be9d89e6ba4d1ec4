// Package auth contains the business logic of staff authentication:
// login, bearer-token verification and first-boot admin seeding.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/afrikanet/satellite-console/internal/lib/jwt"
	"github.com/afrikanet/satellite-console/internal/lib/password"
	"github.com/afrikanet/satellite-console/internal/models"
)

// ErrInvalidCredentials is returned on a wrong username or password.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// UserRepository describes the storage contract for staff accounts.
type UserRepository interface {
	// RegisterUser stores a new account and returns its UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns an account or an error when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CountUsers returns the number of accounts.
	CountUsers(ctx context.Context) (int, error)
}

// Service implements login, registration and token verification.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New creates an auth Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register creates a staff account with a hashed password and the
// operator role.
func (s *Service) Register(ctx context.Context, email, username, fullName, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: hashed,
		Role:         "operator",
	}
	return s.users.RegisterUser(ctx, user)
}

// Login checks the credentials and issues a bearer token. Bad credentials
// of either kind collapse into ErrInvalidCredentials so the response does
// not reveal which half was wrong.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// VerifyToken parses a bearer token and resolves its account. The account
// lookup catches tokens for users that have since been removed.
func (s *Service) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	user, err := s.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		return nil, fmt.Errorf("unknown token subject: %w", err)
	}
	return user, nil
}

// EnsureDefaultAdmin seeds the admin/admin123 account when the users table
// is empty, so a fresh deployment is reachable.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := password.GetHash("admin123")
	if err != nil {
		return err
	}
	_, err = s.users.RegisterUser(ctx, models.User{
		Email:        "admin@afrikanet.com",
		Username:     "admin",
		FullName:     "Administrateur",
		PasswordHash: hashed,
		Role:         "admin",
	})
	if err != nil {
		return err
	}
	s.log.Info("default admin user created", slog.String("username", "admin"))
	return nil
}
