package service

import (
	"context"

	"fichaspro/auth-service/internal/app/auth/entity"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.Session, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error)
	Logout(ctx context.Context, token string) error
	Status(ctx context.Context, token string) (*entity.StatusResponse, error)
}
