package fieldcrypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestCipher_EncryptDecrypt(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	encrypted, err := c.Encrypt("Storgatan 1, Stockholm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encrypted, prefix))
	assert.NotContains(t, encrypted, "Storgatan")

	decrypted, err := c.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "Storgatan 1, Stockholm", decrypted)
}

func TestCipher_NonceIsRandom(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	first, err := c.Encrypt("same")
	require.NoError(t, err)
	second, err := c.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCipher_DecryptLegacyPlaintext(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	got, err := c.Decrypt("Kungsgatan 5")
	require.NoError(t, err)
	assert.Equal(t, "Kungsgatan 5", got)
}

func TestCipher_DecryptTampered(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	encrypted, err := c.Encrypt("Drottninggatan 10")
	require.NoError(t, err)

	other, err := New(strings.Repeat("ab", 32))
	require.NoError(t, err)

	_, err = other.Decrypt(encrypted)
	assert.ErrorIs(t, err, ErrDecryptionFailure)

	_, err = c.Decrypt(prefix + "not-base64!")
	assert.ErrorIs(t, err, ErrMalformedCipher)
}

func TestNew_InvalidKey(t *testing.T) {
	_, err := New("short")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestPlain(t *testing.T) {
	var p Plain

	got, err := p.Encrypt("Vasagatan 2")
	require.NoError(t, err)
	assert.Equal(t, "Vasagatan 2", got)

	_, err = p.Decrypt(prefix + "AAAA")
	assert.ErrorIs(t, err, ErrDecryptionFailure)
}
