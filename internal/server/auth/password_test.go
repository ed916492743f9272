package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hash)

	require.True(t, CheckPassword(hash, "admin123"))
	require.False(t, CheckPassword(hash, "wrongpass"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	require.False(t, CheckPassword("not-a-bcrypt-hash", "admin123"))
}
