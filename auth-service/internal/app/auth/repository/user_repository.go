package repository

import (
	"context"
	"errors"
	"fmt"

	"fichaspro/auth-service/internal/app/auth/entity"
	"fichaspro/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usuariosTable = "usuarios"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS usuarios (
	id            UUID PRIMARY KEY,
	email         VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

// EnsureSchema создает таблицу usuarios, если ее нет
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure usuarios schema: %w", err)
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, usuariosTable)
	defer func() { timer.Done(err) }()

	query := `
		INSERT INTO usuarios (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err = r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.CreatedAt); err != nil {
		return mapUserError(err, "failed to create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (user *entity.User, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, usuariosTable)
	defer func() { timer.Done(err) }()

	query := `SELECT id, email, password_hash, created_at FROM usuarios WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id), "failed to get user by id")
}

// GetByEmail - email хранится в нижнем регистре
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user *entity.User, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, usuariosTable)
	defer func() { timer.Done(err) }()

	query := `SELECT id, email, password_hash, created_at FROM usuarios WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, email), "failed to get user by email")
}

func (r *userRepository) scanOne(row pgx.Row, msg string) (*entity.User, error) {
	var user entity.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, mapUserError(err, msg)
	}
	return &user, nil
}

func mapUserError(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("%s: %w", msg, err)
}
