package repository

import (
	"context"
	"errors"
	"time"

	"fichaspro/auth-service/internal/app/auth/entity"

	"github.com/google/uuid"
)

const serviceName = "auth-service"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionRepository - отозванные сессии по jti. Запись живет до истечения токена.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
