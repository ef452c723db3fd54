package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := NewCipherFromBase64(key)
	require.NoError(t, err)
	return c
}

func TestNewCipher_KeyLength(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		_, err := NewCipher(make([]byte, size))
		assert.NoError(t, err, "key size %d", size)
	}
	for _, size := range []int{0, 8, 31, 33} {
		_, err := NewCipher(make([]byte, size))
		assert.Error(t, err, "key size %d", size)
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, plain := range []string{"", "hunter2", "암호_2508", "长い平文 with spaces\nand newlines"} {
		enc, err := c.Encrypt(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, enc)

		got, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestCipher_EncryptNondeterministic(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt("same-plaintext")
	require.NoError(t, err)
	b, err := c.Encrypt("same-plaintext")
	require.NoError(t, err)

	// 随机nonce, 同一明文两次加密密文不同
	assert.NotEqual(t, a, b)
}

func TestCipher_DecryptTampered(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt("secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(enc)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = c.Decrypt(tampered)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestCipher_DecryptWrongKey(t *testing.T) {
	c1 := newTestCipher(t)
	c2 := newTestCipher(t)

	enc, err := c1.Encrypt("secret")
	require.NoError(t, err)

	_, err = c2.Decrypt(enc)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestCipher_DecryptMalformed(t *testing.T) {
	c := newTestCipher(t)

	for _, bad := range []string{"not-base64!!!", "", base64.StdEncoding.EncodeToString([]byte("short"))} {
		_, err := c.Decrypt(bad)
		assert.ErrorIs(t, err, ErrDecryptFailed, "input %q", bad)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testpassword")
	require.NoError(t, err)
	assert.NotEqual(t, "testpassword", hash)

	assert.True(t, CheckPassword("testpassword", hash))
	assert.False(t, CheckPassword("wrongpassword", hash))
	assert.False(t, CheckPassword("testpassword", "not-a-bcrypt-hash"))
}

func TestGenerateKey(t *testing.T) {
	k1, err := GenerateKey()
	require.NoError(t, err)
	k2, err := GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)

	raw, err := base64.StdEncoding.DecodeString(k1)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
