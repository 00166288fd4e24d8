package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		shouldFail bool
	}{
		{name: "valid strong password", password: "SecureP@ss123"},
		{name: "too short", password: "Pass@1", shouldFail: true},
		{name: "missing uppercase", password: "securepass@123", shouldFail: true},
		{name: "missing lowercase", password: "SECUREPASS@123", shouldFail: true},
		{name: "missing digit", password: "SecurePass@xyz", shouldFail: true},
		{name: "missing special character", password: "SecurePass123", shouldFail: true},
		{name: "common password rejected", password: "password123", shouldFail: true},
		{name: "too long for bcrypt", password: "Aa1@" + strings.Repeat("x", 80), shouldFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.shouldFail {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid password")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("SecurePass2025!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, IsBcryptHash(hash))
	assert.NoError(t, ComparePassword(hash, "SecurePass2025!"))
	assert.Error(t, ComparePassword(hash, "securepass2025!"))
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("", bcrypt.MinCost)
	assert.Error(t, err)
}

func TestIsBcryptHash_Plaintext(t *testing.T) {
	assert.False(t, IsBcryptHash("SecurePass2025!"))
	assert.False(t, IsBcryptHash(""))
}

func TestNewSessionToken_UniqueHex(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token := NewSessionToken()
		assert.Len(t, token, SessionTokenLength*2)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}
