package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidToken = errors.New("invalid tracking token")

// EncryptID turns a numeric id into an opaque url-safe token. A fresh nonce
// is used on every call, so the same id never yields the same token twice.
func EncryptID(id uint, key string) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to read random nonce: %w", err)
	}

	plaintext := []byte(strconv.FormatUint(uint64(id), 10))
	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// DecryptID reverses EncryptID. Tampered or foreign tokens fail authentication.
func DecryptID(token string, key string) (uint, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	aead, err := newAEAD(key)
	if err != nil {
		return 0, err
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) <= aead.NonceSize() {
		return 0, ErrInvalidToken
	}

	nonce, body := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, body, nil)
	if err != nil {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(string(plaintext), 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func newAEAD(key string) (cipher.AEAD, error) {
	k := []byte(key)
	if len(k) != 16 && len(k) != 24 && len(k) != 32 {
		return nil, fmt.Errorf("invalid key length: %d (must be 16/24/32)", len(k))
	}
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
