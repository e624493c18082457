package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookstore/backend/internal/models"
	"github.com/bookstore/backend/internal/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// The user's ID is set on success. If the username is already taken, the
	// returned error wraps models.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by exact username match.
	//
	// If no such user exists, models.ErrUserNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SeedUser is a fixed default account created at first startup if absent
type SeedUser struct {
	Username string
	Password string
	Role     models.Role
}

// DefaultSeedUsers are the two accounts the system ships with
var DefaultSeedUsers = []SeedUser{
	{Username: "admin", Password: "admin123", Role: models.RoleAdmin},
	{Username: "user", Password: "user123", Role: models.RoleUser},
}

// dummyHash is compared against when the username is unknown, so both
// failure paths of Authenticate cost one bcrypt comparison and do not
// leak which usernames exist.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic("failed to precompute dummy hash: " + err.Error())
	}
	return h
}()

// authService implements authentication and session management
type authService struct {
	userRepo UserRepository
	registry *session.Registry
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, registry *session.Registry, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		registry: registry,
		logger:   logger,
	}
}

// Authenticate checks the submitted credentials and, on success, mints a
// session carrying a snapshot of the user's id, username and role.
//
// Unknown username and wrong password are indistinguishable to the caller:
// both return models.ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Burn a comparison so this path is as slow as a wrong password
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.registry.Create(user), nil
}

// Validate resolves a session token. Absent, unknown and expired tokens
// all yield models.ErrNoSession.
func (s *authService) Validate(token string) (*models.Session, error) {
	if token == "" {
		return nil, models.ErrNoSession
	}
	return s.registry.Get(token)
}

// EndSession invalidates a session token. Idempotent: ending an unknown
// or already-ended session is not an error.
func (s *authService) EndSession(token string) {
	s.registry.Delete(token)
}

// EnsureSeedUsers creates any missing seed accounts with a fresh hash of
// their default password. Idempotent: existing rows are left untouched,
// and a concurrent insert losing the uniqueness race counts as seeded.
func (s *authService) EnsureSeedUsers(ctx context.Context) error {
	for _, seed := range DefaultSeedUsers {
		exists, err := s.userRepo.ExistsByUsername(ctx, seed.Username)
		if err != nil {
			return fmt.Errorf("failed to check seed user %q: %w", seed.Username, err)
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := &models.User{
			Username:     seed.Username,
			PasswordHash: string(hash),
			Role:         seed.Role,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, models.ErrDuplicateUsername) {
				s.logger.Info("seed user already present", zap.String("username", seed.Username))
				continue
			}
			return fmt.Errorf("failed to create seed user %q: %w", seed.Username, err)
		}
		s.logger.Info("seed user created",
			zap.String("username", seed.Username),
			zap.String("role", string(seed.Role)),
		)
	}
	return nil
}
