// Package codec implements the field encryption the server deliberately
// never performs. Clients (and the test suite) encrypt names, descriptions,
// amounts, timestamps and attachments with it before transmission; the
// backend only ever sees the resulting opaque bytes.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/pbkdf2"

	"fintrack/internal/models"
)

const (
	keyLength  = 32
	iterations = 100_000
)

var (
	ErrCipherTooShort = errors.New("ciphertext shorter than nonce")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// Codec holds an AES-256-GCM key derived from a passphrase. Ciphertexts are
// nonce||sealed, so each field decrypts independently.
type Codec struct {
	aead cipher.AEAD
}

func New(passphrase string, salt []byte) (*Codec, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

func (c *Codec) Encrypt(plaintext []byte) (models.Opaque, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	return models.Opaque(append(nonce, sealed...)), nil
}

func (c *Codec) Decrypt(data models.Opaque) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(data) < ns {
		return nil, ErrCipherTooShort
	}
	nonce, sealed := data[:ns], data[ns:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

// CanonicalAmount normalizes a monetary string to two decimal places so a
// given value always encrypts from the same plaintext bytes.
func CanonicalAmount(raw string) (string, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return "", ErrInvalidAmount
	}
	if value.Exponent() < -2 {
		return "", ErrInvalidAmount
	}
	return value.StringFixed(2), nil
}

// CanonicalTime is the plaintext form for both entry timestamps.
func CanonicalTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (c *Codec) EncryptAmount(raw string) (models.Opaque, error) {
	canonical, err := CanonicalAmount(raw)
	if err != nil {
		return nil, err
	}
	return c.Encrypt([]byte(canonical))
}

func (c *Codec) DecryptAmount(data models.Opaque) (decimal.Decimal, error) {
	plaintext, err := c.Decrypt(data)
	if err != nil {
		return decimal.Decimal{}, err
	}
	value, err := decimal.NewFromString(string(plaintext))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return value, nil
}

func (c *Codec) EncryptTime(t time.Time) (models.Opaque, error) {
	return c.Encrypt([]byte(CanonicalTime(t)))
}

func (c *Codec) DecryptTime(data models.Opaque) (time.Time, error) {
	plaintext, err := c.Decrypt(data)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, string(plaintext))
}
