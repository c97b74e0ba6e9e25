package entity

import (
	"time"

	"github.com/google/uuid"
)

// User - учетная запись, таблица usuarios
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserInfo - публичная часть пользователя
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Info() *UserInfo {
	return &UserInfo{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Session - выпущенный токен сессии
type Session struct {
	User      *User
	Token     string
	TokenID   string
	ExpiresAt time.Time
}
