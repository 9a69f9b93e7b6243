package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/axellelanca/catalog/internal/auth"
	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

// AuthService authenticates users by password or token.
type AuthService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.JWTManager
}

func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.JWTManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Login checks an email/password pair and issues a token pair. Unknown
// emails, wrong passwords and inactive accounts all fail with
// customerrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, auth.TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, customerrors.ErrNotFound) {
		return nil, auth.TokenPair{}, customerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if !s.hasher.Check(user.Password, password) || !user.IsActive {
		return nil, auth.TokenPair{}, customerrors.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh issues a new access token from a refresh token.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	user, err := s.userFromToken(ctx, refresh, auth.RefreshToken)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(auth.AccessToken, user.ID, user.Email)
}

// Authenticate resolves the active user an access token was issued to.
func (s *AuthService) Authenticate(ctx context.Context, access string) (*models.User, error) {
	return s.userFromToken(ctx, access, auth.AccessToken)
}

func (s *AuthService) userFromToken(ctx context.Context, token string, typ auth.TokenType) (*models.User, error) {
	claims, err := s.tokens.Parse(token, typ)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", customerrors.ErrInvalidCredentials, err)
	}

	user, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, customerrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d not found", customerrors.ErrInvalidCredentials, id)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user %d is inactive", customerrors.ErrInvalidCredentials, id)
	}
	return user, nil
}
