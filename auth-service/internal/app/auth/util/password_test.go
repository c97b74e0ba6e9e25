package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)

	assert.NotEqual(t, "segredo123", hash)
	assert.True(t, CheckPassword("segredo123", hash))
	assert.False(t, CheckPassword("segredo124", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("segredo123")
	require.NoError(t, err)
	second, err := HashPassword("segredo123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("segredo123", first))
	assert.True(t, CheckPassword("segredo123", second))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("segredo123", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("", ""))
}

func TestHashPassword_BcryptLimit(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.Error(t, err)
}
