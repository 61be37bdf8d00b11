// Package service contains application services for authentication, courses,
// materials and progress tracking.
package service

import (
	"context"
	"errors"
	"fmt"

	pkgcrypto "coursetracker/internal/crypto"
	"coursetracker/internal/errs"
	"coursetracker/internal/limiter"
	"coursetracker/internal/model"
	"coursetracker/internal/repository"
	"coursetracker/internal/token"
	"github.com/gofrs/uuid/v5"
)

// AuthService defines authentication and account lifecycle operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, name, password string) (*model.User, error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, name, password, ip string) (model.Tokens, model.User, error)
	// Resolve maps a bearer token to a live user record, failing closed.
	Resolve(ctx context.Context, tokenString string) (*model.User, error)
	// GetUser loads a user by id.
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	// DeleteAccount removes the actor's own account with everything it owns.
	DeleteAccount(ctx context.Context, actorID, targetID uuid.UUID) error
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Issuer
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Issuer, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Register creates a new user record. A taken name returns ErrAlreadyExists
// and leaves the existing record untouched.
func (s *AuthServiceImpl) Register(ctx context.Context, name, password string) (*model.User, error) {
	if name == "" || password == "" {
		return nil, errors.New("empty name/password")
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uid,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginWithIP authenticates with rate limiting by (name, ip). Unknown name and
// wrong password produce the same ErrUnauthorized so callers cannot probe for
// registered names.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, name, password, ip string) (model.Tokens, model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, name, ipHash)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	if !allowed {
		return model.Tokens{}, model.User{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByName(ctx, name)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, name, ipHash); ferr == nil && blocked {
			return model.Tokens{}, model.User{}, errs.ErrRateLimited
		}
		// hide whether the name exists
		return model.Tokens{}, model.User{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, name, ipHash)

	access, exp, err := s.tokens.Issue(u.Name)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, *u, nil
}

// Resolve runs verify token -> extract subject -> load user by name. All three
// steps must succeed; any failure surfaces as ErrUnauthorized with the concrete
// cause attached only for server-side logs.
func (s *AuthServiceImpl) Resolve(ctx context.Context, tokenString string) (*model.User, error) {
	sub, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, fmt.Errorf("verify: %v: %w", err, errs.ErrUnauthorized)
	}
	u, err := s.users.GetByName(ctx, sub)
	if err != nil {
		// valid token for a user that no longer exists
		return nil, fmt.Errorf("subject lookup: %v: %w", err, errs.ErrUnauthorized)
	}
	return u, nil
}

// GetUser loads a user by id.
func (s *AuthServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// DeleteAccount removes the target account. Only the account owner may do
// this; there is no administrative override.
func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, actorID, targetID uuid.UUID) error {
	if err := authorizeOwner(actorID, targetID); err != nil {
		return err
	}
	return s.users.Delete(ctx, targetID)
}
