package filecrypt

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

var (
	ErrInvalidKey = errors.New("invalid encryption key")
	// ErrDecrypt is returned when ciphertext was produced under a different
	// key or has been corrupted. It must never be collapsed into empty
	// output: that would mask corrupted-record bugs.
	ErrDecrypt = errors.New("decrypt artifact failed")
)

// Cipher encrypts uploaded artifacts before they reach persistent storage.
// It wraps a single process-wide Fernet key loaded from configuration.
type Cipher struct {
	key *fernet.Key
}

// New parses a 32-byte URL-safe base64 Fernet key.
func New(encodedKey string) (*Cipher, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Cipher{key: key}, nil
}

func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	token, err := fernet.EncryptAndSign(plaintext, c.key)
	if err != nil {
		return nil, fmt.Errorf("encrypt artifact failed: %w", err)
	}
	return token, nil
}

func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	// Zero TTL: stored artifacts never expire.
	plaintext := fernet.VerifyAndDecrypt(ciphertext, 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
