// Package services contains server-side business logic. This file implements
// AuthService: credential verification and access-token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saferide/saferide/internal/common"
	"github.com/saferide/saferide/internal/server/auth"
	"github.com/saferide/saferide/internal/server/config"
	"github.com/saferide/saferide/internal/server/models"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
)

// LoginResult bundles the minted access token with the authenticated user.
type LoginResult struct {
	AccessToken string
	ExpiresIn   int // seconds
	User        *models.User
}

// AuthService verifies credentials, mints JWTs, and resolves the current user
// from a token subject.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login verifies email/password and, on success, returns a LoginResult.
// Unknown accounts, wrong passwords, and inactive accounts all map to
// common.ErrorUnauthorized so that callers cannot distinguish them.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, common.ErrorUnauthorized
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("error updating last login: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int(s.accessTokenValidityDuration.Seconds()),
		User:        user,
	}, nil
}

// VerifyToken resolves the user behind an access token. Expired or malformed
// tokens and unknown or inactive accounts all yield common.ErrorUnauthorized.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
