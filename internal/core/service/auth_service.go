package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/core/ports"
)

// Messages returned to callers. Internal error text never leaks past this
// boundary; unexpected failures all collapse into msgGenericFailure.
const (
	msgInvalidRole        = "Invalid role specified"
	msgUsernameExists     = "Username already exists"
	msgWeakPassword       = "Weak Password. The password must contain at least one uppercase letter, one lowercase letter, one digit, one special character, and be at least 8 characters long."
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
	msgTooManyAttempts    = "Too many failed login attempts. Please try again later."
	msgGenericFailure     = "An error occurred. Please try again later."
)

// LoginThrottle limits failed login attempts per username. Implementations
// are expected to be shared across instances (Redis).
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration, authentication, and role assignment.
// Every method returns an AuthResult and never an error: validation
// failures carry their specific message, unexpected store failures are
// logged and converted to a generic one.
type AuthService struct {
	repo     ports.AuthRepository
	hasher   ports.PasswordHasher
	issuer   *TokenIssuer
	throttle LoginThrottle
	logger   zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, hasher ports.PasswordHasher, issuer *TokenIssuer, throttle LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, throttle: throttle, logger: logger}
}

func failure(msg string) *ports.AuthResult {
	return &ports.AuthResult{Success: false, Message: msg}
}

// Register creates a new user and returns a token for it. Checks run in
// order and short-circuit: role membership, username availability, password
// strength. The store's unique index is the real uniqueness guarantee; the
// Exists pre-check only gives a friendlier fast path.
func (s *AuthService) Register(ctx context.Context, username, password, role string) *ports.AuthResult {
	if !domain.IsValidRole(role) {
		return failure(msgInvalidRole)
	}

	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "register").Str("username", username).Msg("username lookup failed")
		return failure(msgGenericFailure)
	}
	if exists {
		return failure(msgUsernameExists)
	}

	if !domain.IsStrongPassword(password) {
		return failure(msgWeakPassword)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "register").Msg("password hashing failed")
		return failure(msgGenericFailure)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         strings.ToLower(role),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		// The unique index closes the race between Exists and Insert.
		if errors.Is(err, domain.ErrUserExists) {
			return failure(msgUsernameExists)
		}
		s.logger.Error().Err(err).Str("op", "register").Str("username", username).Msg("user insert failed")
		return failure(msgGenericFailure)
	}

	token, err := s.issuer.Issue(created)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "register").Int64("user_id", created.ID).Msg("token issuance failed")
		return failure(msgGenericFailure)
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{Success: true, Token: token}
}

// Login authenticates by exact username and password. Unknown user and
// wrong password return the same message so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) *ports.AuthResult {
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
		} else if blocked {
			return failure(msgTooManyAttempts)
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Str("op", "login").Str("username", username).Msg("user lookup failed")
			return failure(msgGenericFailure)
		}
		return s.loginFailed(ctx, username)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return s.loginFailed(ctx, username)
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Str("op", "login").Int64("user_id", user.ID).Msg("token issuance failed")
		return failure(msgGenericFailure)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
		}
	}

	return &ports.AuthResult{Success: true, Token: token}
}

func (s *AuthService) loginFailed(ctx context.Context, username string) *ports.AuthResult {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
		}
	}
	return failure(msgInvalidCredentials)
}

// SetRole assigns a new role to an existing user. The role is matched
// case-insensitively and stored lower-case. Authorization (only admins may
// call this) is enforced upstream by the transport layer.
func (s *AuthService) SetRole(ctx context.Context, username, role string) *ports.AuthResult {
	if !domain.IsValidRole(role) {
		return failure(msgInvalidRole)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return failure(msgUserNotFound)
		}
		s.logger.Error().Err(err).Str("op", "set_role").Str("username", username).Msg("user lookup failed")
		return failure(msgGenericFailure)
	}

	user.Role = strings.ToLower(role)
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("op", "set_role").Str("username", username).Msg("role update failed")
		return failure(msgGenericFailure)
	}

	s.logger.Info().Str("username", username).Str("role", user.Role).Msg("role assigned")
	return &ports.AuthResult{
		Success: true,
		Message: fmt.Sprintf("Role '%s' assigned to user '%s'", role, username),
	}
}
