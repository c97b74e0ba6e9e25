package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user with this email already exists")
)

const (
	msgSessaoInvalida    = "Sessão inválida ou expirada"
	msgUsuarioNaoEncontr = "Usuário não encontrado"
)
