// Package service holds the request-independent orchestration behind the HTTP
// handlers: credential checks and token issuance for auth, and breed
// resolution for the cat catalog.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xknRiya/cats-api/internal/auth"
	"github.com/xknRiya/cats-api/internal/models"
	"github.com/xknRiya/cats-api/internal/storage"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("email or password incorrect")
	// ErrEmailTaken is returned when a live account already uses the email.
	ErrEmailTaken = errors.New("email already exists")
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenIssuer signs session tokens for a principal.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, error)
}

// AuthService implements login, registration and the current-principal lookup.
type AuthService struct {
	users  storage.UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger

	// dummyHash is compared against when the email is unknown so that both
	// login failures cost one bcrypt comparison.
	dummyHash func() (string, error)
}

// NewAuthService wires the service to its collaborators.
func NewAuthService(users storage.UserStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	s := &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
	s.dummyHash = sync.OnceValues(func() (string, error) {
		return hasher.Hash(context.Background(), "dummy-password-for-unknown-accounts")
	})
	return s
}

// Login verifies the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("find user: %w", err)
		}
		s.spendComparison(ctx, password)
		s.logger.InfoContext(ctx, "login rejected", "reason", "unknown email")
		return "", ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Principal{Email: user.Email, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *AuthService) spendComparison(ctx context.Context, password string) {
	hash, err := s.dummyHash()
	if err != nil {
		s.logger.WarnContext(ctx, "dummy hash unavailable", "error", err)
		return
	}
	_, _ = s.hasher.Verify(ctx, password, hash)
}

// Register creates an account with the default role. The insert's uniqueness
// constraint is authoritative; the lookup beforehand only short-circuits the
// common case without spending a hash.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, ErrEmailTaken
	case !errors.Is(err, storage.ErrNotFound):
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.DefaultRole,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Me returns the principal established by the authentication gate.
func (s *AuthService) Me(p auth.Principal) auth.Principal {
	return p
}
