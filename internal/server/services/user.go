// Package services contains server-side business logic: account
// registration/login and the document catalog operations.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/mihailvs/docshare/internal/common"
	"github.com/mihailvs/docshare/internal/server/auth"
	"github.com/mihailvs/docshare/internal/server/config"
	"github.com/mihailvs/docshare/internal/server/models"
	"github.com/mihailvs/docshare/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: create accounts
// - Login: verify credentials and mint a bearer token
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the users repository and
// server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a salted password hash. A taken username
// yields common.ErrorAlreadyExists. The plaintext password is never stored.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Username: username, PasswordHash: hash, Email: email}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login verifies the credentials and returns a signed bearer token embedding
// the username. Unknown users and wrong passwords produce the same
// common.ErrorUnauthorized; the unknown-user path still burns a hash
// comparison so the two cases cost the same.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckDummyPassword(password)
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
