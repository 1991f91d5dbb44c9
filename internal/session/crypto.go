package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	nonceSize = 12
	keySize   = 32
	argonTime = 3
	argonMem  = 64 * 1024
	argonPar  = 4
)

// DefaultSalt is used when no salt is configured. Deployments sharing a secret
// should set their own.
const DefaultSalt = "hbnb-session-cookie"

var errSealedTooShort = errors.New("sealed value too short")

// Sealer encrypts cookie values with AES-256-GCM under a key derived from a
// secret with Argon2id.
type Sealer struct {
	aead cipher.AEAD
}

// DeriveKey derives a 32-byte AES-256 key from secret and salt.
func DeriveKey(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, argonTime, argonMem, argonPar, keySize)
}

func NewSealer(secret, salt string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("empty cookie secret")
	}
	if salt == "" {
		salt = DefaultSalt
	}

	block, err := aes.NewCipher(DeriveKey(secret, []byte(salt)))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// Seal returns base64url([nonce][ciphertext]).
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, nonceSize+len(plaintext)+s.aead.Overhead())
	out = append(out, nonce...)
	out = s.aead.Seal(out, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	if len(data) < nonceSize {
		return "", errSealedTooShort
	}

	plaintext, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plaintext), nil
}
