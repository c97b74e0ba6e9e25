package util

import (
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes - bcrypt не принимает пароли длиннее 72 байт
const MaxPasswordBytes = 72

// HashPassword - bcrypt с cost по умолчанию
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
