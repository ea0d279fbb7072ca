package fieldcrypt

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// prefix помечает зашифрованные значения; строки без него считаются открытым текстом
const prefix = "enc:v1:"

var (
	ErrInvalidKey        = errors.New("fieldcrypt: key must be 32 bytes hex-encoded")
	ErrMalformedCipher   = errors.New("fieldcrypt: malformed ciphertext")
	ErrDecryptionFailure = errors.New("fieldcrypt: decryption failed")
)

// Cipher шифрует строковые поля (адреса) с помощью XChaCha20-Poly1305
type Cipher struct {
	key []byte
}

// New создает шифр из ключа в hex (64 символа)
func New(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return &Cipher{key: key}, nil
}

// Encrypt возвращает "enc:v1:" + base64(nonce || ciphertext)
func (c *Cipher) Encrypt(plain string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: init aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("fieldcrypt: generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)
	return prefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt расшифровывает значение; строки без префикса возвращаются как есть
func (c *Cipher) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, prefix) {
		return value, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, prefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCipher, err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("fieldcrypt: init aead: %w", err)
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", ErrMalformedCipher
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailure
	}
	return string(plain), nil
}

// Plain хранит значения открытым текстом (шифрование выключено)
type Plain struct{}

func (Plain) Encrypt(plain string) (string, error) { return plain, nil }

func (Plain) Decrypt(value string) (string, error) {
	if strings.HasPrefix(value, prefix) {
		return "", fmt.Errorf("%w: encryption key is not configured", ErrDecryptionFailure)
	}
	return value, nil
}
