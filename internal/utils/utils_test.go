package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptID(t *testing.T) {
	tok, err := EncryptID(42, testKey)
	require.NoError(t, err)

	again, err := EncryptID(42, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, tok, again)

	id, err := DecryptID(tok, testKey)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestDecryptID_Rejects(t *testing.T) {
	tok, err := EncryptID(7, testKey)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	raw[len(raw)/2] ^= 0xff
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	tests := map[string]string{
		"empty":      "",
		"plain id":   "7",
		"not base64": "***",
		"tampered":   tampered,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecryptID(in, testKey)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = DecryptID(tok, "fedcba9876543210fedcba9876543210")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncryptID_BadKey(t *testing.T) {
	_, err := EncryptID(1, "short")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestJWT_RoundTrip(t *testing.T) {
	tok, err := SignJWT("secret", "user-1", "admin", 5)
	require.NoError(t, err)

	_, claims, err := ParseJWT("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, _, err = ParseJWT("other", tok)
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	tok, err := SignJWT("secret", "user-1", "customer", -1)
	require.NoError(t, err)
	_, _, err = ParseJWT("secret", tok)
	assert.Error(t, err)
}
