// Package services contains server-side business logic. This file implements
// UserService: registration, login, and resolving a bearer token into a
// verified user record.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailydo/internal/common"
	"github.com/dmitrijs2005/dailydo/internal/server/auth"
	"github.com/dmitrijs2005/dailydo/internal/server/config"
	"github.com/dmitrijs2005/dailydo/internal/server/models"
	"github.com/dmitrijs2005/dailydo/internal/server/repositories/repomanager"
)

// Token is the credential issued to a client after a successful login.
type Token struct {
	AccessToken string
	TokenType   string
}

// UserService provides authentication-related operations:
//   - Register: create users with a bcrypt-hashed password
//   - Login: verify credentials and mint a bearer token
//   - ResolveToken: validate a token and load the user it identifies
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The plaintext password is hashed before it
// reaches the repository and is never stored or logged. Registering an email
// that is already on file yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the email/password pair and, on success, returns a signed
// bearer token whose subject is the user's email. A missing user and a wrong
// password collapse to the same common.ErrorUnauthorized so the caller
// cannot tell which of the two was wrong.
func (s *UserService) Login(ctx context.Context, email string, password []byte) (*Token, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	accessToken, err := auth.GenerateToken(user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Token{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// ResolveToken validates the bearer token and loads the user named by its
// subject claim. It is called on every authenticated request and never
// caches: re-validating the token and re-fetching the user means deleting an
// account revokes its outstanding tokens immediately. Every failure variety
// (bad token, expired token, unknown subject) collapses to
// common.ErrorUnauthorized.
func (s *UserService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	subject, err := auth.GetSubjectFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
