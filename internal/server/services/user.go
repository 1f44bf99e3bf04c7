// Package services contains server-side business logic. This file implements
// UserService, which handles signup and login and issues access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/eventboard/internal/common"
	"github.com/dmitrijs2005/eventboard/internal/logging"
	"github.com/dmitrijs2005/eventboard/internal/server/auth"
	"github.com/dmitrijs2005/eventboard/internal/server/models"
	"github.com/dmitrijs2005/eventboard/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and checks passwords; see auth.PasswordHasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// TokenIssuer builds and signs access tokens; see auth.TokenCodec.
type TokenIssuer interface {
	NewClaims(user *models.User) *auth.Claims
	Issue(claims *auth.Claims) (string, error)
}

// SignupInput is the signup request body.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// UserService provides the authentication operations:
//   - Signup: register a user and mint a token
//   - Login: verify credentials and mint a token
//
// Errors are always one of the sentinels in package common; causes of
// ErrorInternal are logged here and not returned.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
}

// NewUserService wires a UserService. db may be nil when m does not need it
// (in-memory directory).
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "user_service"),
	}
}

// Signup registers a user and returns an access token.
//
// The FindByEmail pre-check only short-cuts the common case. Two concurrent
// signups can both pass it; the repository's unique constraint decides the
// winner and the loser gets ErrorAlreadyExists from Create.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "signup: user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password: %v", common.ErrorValidation, err)
		}
		s.logger.Error(ctx, "signup: password hash failed", "error", err)
		return "", common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{Name: in.Name, Email: in.Email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Warn(ctx, "signup: email taken at insert")
			return "", common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "signup: create user failed", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login checks the password of the user registered under in.Email and
// returns an access token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		s.logger.Error(ctx, "login: user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if user.PasswordHash == "" {
		s.logger.Error(ctx, "login: stored password hash is empty", "user_id", user.ID)
		return "", common.ErrorInternal
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "login: password check failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}
	if !ok {
		s.logger.Info(ctx, "login: wrong password", "user_id", user.ID)
		return "", common.ErrorUnauthorized
	}

	return s.issue(ctx, user)
}

func (s *UserService) issue(ctx context.Context, user *models.User) (string, error) {
	token, err := s.tokens.Issue(s.tokens.NewClaims(user))
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}
