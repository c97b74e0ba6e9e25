package entity

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse - ответ register/login. Token для клиентов без cookie.
type SessionResponse struct {
	User      *UserInfo `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token"`
}

// StatusResponse - GET /auth/status, всегда с полями authenticated, user и error
type StatusResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user"`
	Error         *string   `json:"error"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
