// Package helpers encrypts the listings API access token kept in visitor sessions.
package helpers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var ErrSealedTooShort = errors.New("sealed token too short")

// TokenKey derives the AES-256 key for session tokens from the application key.
func TokenKey(appKey string) ([]byte, error) {
	if appKey == "" {
		return nil, errors.New("empty application key")
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(appKey), nil, []byte("findaccommodation session token"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}

	return key, nil
}

// SealToken encrypts token with AES-256-GCM. The nonce is prepended to the
// ciphertext and the result is base64 encoded.
func SealToken(key []byte, token string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(token), nil)

	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

func OpenToken(key []byte, sealed string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	ciphertext, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrSealedTooShort
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes for AES-256, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
