package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fichaspro/auth-service/internal/app/auth/entity"
	"fichaspro/auth-service/internal/app/auth/repository"
	"fichaspro/auth-service/internal/app/auth/util"
	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
)

// AuthService - регистрация, вход, выход и статус сессии
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	jwtManager *util.JWTManager
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	jwtManager *util.JWTManager,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
	}
}

func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.Session, error) {
	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	// Уникальность email проверяет индекс usuarios, без предварительного SELECT
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	metrics.AuthRegistrations.Inc()

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.AuthLogins.WithLabelValues("failed").Inc()
		return nil, ErrInvalidCredentials
	}
	metrics.AuthLogins.WithLabelValues("success").Inc()

	return s.issue(user)
}

// Logout отзывает jti до конца срока токена. Невалидный токен - не ошибка.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	metrics.AuthSessionsRevoked.Inc()

	logger.Info().Str("user_id", claims.UserID).Msg("session revoked")
	return nil
}

// Status никогда не отвечает ошибкой на плохую сессию: только на сбой хранилища
func (s *AuthService) Status(ctx context.Context, token string) (*entity.StatusResponse, error) {
	if token == "" {
		return &entity.StatusResponse{}, nil
	}

	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return unauthenticated(msgSessaoInvalida), nil
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return unauthenticated(msgSessaoInvalida), nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return unauthenticated(msgSessaoInvalida), nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthenticated(msgUsuarioNaoEncontr), nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &entity.StatusResponse{Authenticated: true, User: user.Info()}, nil
}

func (s *AuthService) issue(user *entity.User) (*entity.Session, error) {
	token, claims, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &entity.Session{
		User:      user,
		Token:     token,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func unauthenticated(msg string) *entity.StatusResponse {
	return &entity.StatusResponse{Error: &msg}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
