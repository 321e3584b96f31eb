package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.NotEqual(t, tt.password, hash)

			// bcrypt modular crypt prefix
			require.True(t, strings.HasPrefix(hash, "$2"),
				"hash should be in bcrypt format")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	// Both still verify independently
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	err = VerifyPassword("not-the-password", hash)
	require.ErrorIs(t, err, ErrPasswordMismatch)

	err = VerifyPassword("S3cret", hash)
	require.ErrorIs(t, err, ErrPasswordMismatch, "verification is case-sensitive")
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	err := VerifyPassword("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPasswordMismatch)
}
