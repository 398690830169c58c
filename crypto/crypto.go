// Package crypto provides AES-256-GCM encryption for storing GitHub access
// tokens at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"fbbackend/core"
)

// TokenCipher handles AES-256-GCM encryption and decryption of opaque
// credential strings with a single process-wide key.
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher creates a TokenCipher from a hex-encoded 32-byte key.
// A missing or malformed key is a configuration error; there is no
// degraded no-op mode.
func NewTokenCipher(hexKey string) (*TokenCipher, error) {
	if hexKey == "" {
		return nil, &core.ConfigurationError{Key: "TOKEN_ENCRYPTION_KEY"}
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, &core.ConfigurationError{Key: "TOKEN_ENCRYPTION_KEY"}
	}
	if len(key) != 32 {
		return nil, &core.ConfigurationError{Key: "TOKEN_ENCRYPTION_KEY"}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &TokenCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns a base64-encoded ciphertext with
// the nonce prepended. A fresh nonce is generated per call, so repeated
// encryption of equal plaintext produces different ciphertexts.
func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", &core.CryptoError{Op: "encrypt", Err: err}
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a base64-encoded ciphertext with the nonce prepended.
// The GCM authentication tag is verified; ciphertext not produced by the
// same key fails with a CryptoError.
func (c *TokenCipher) Decrypt(encoded string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", &core.CryptoError{Op: "decrypt", Err: fmt.Errorf("invalid ciphertext encoding")}
	}

	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", &core.CryptoError{Op: "decrypt", Err: fmt.Errorf("ciphertext too short")}
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", &core.CryptoError{Op: "decrypt", Err: fmt.Errorf("authentication failed")}
	}

	return string(plaintext), nil
}

// GenerateKey generates a new random 32-byte key and returns it hex-encoded.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
