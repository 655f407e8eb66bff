package cryptobox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBox(t *testing.T, key string) *CryptoBox {
	t.Helper()

	box, err := New([]byte(key), zap.NewNop())
	require.NoError(t, err)

	return box
}

func TestNew_EmptyKey(t *testing.T) {
	_, err := New(nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNew_ShortKeyIsAccepted(t *testing.T) {
	// короткий ключ даёт предупреждение, но не ошибку
	box, err := New([]byte("short"), zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, box)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	box := newBox(t, "0123456789abcdef0123456789abcdef")

	tests := []struct {
		name      string
		plaintext string
	}{
		{"email", "kim@example.com"},
		{"unicode", "почта@пример.рф"},
		{"long", "a-very-long-address.with.dots+tag@subdomain.example.org"},
		{"single char", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := box.Encrypt(tt.plaintext)
			require.NoError(t, err)
			assert.NotEqual(t, tt.plaintext, ciphertext)

			plaintext, err := box.Decrypt(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestEncrypt_EmptyPlaintext(t *testing.T) {
	box := newBox(t, "0123456789abcdef")

	_, err := box.Encrypt("")
	assert.ErrorIs(t, err, ErrEmptyPlaintext)
}

func TestEncrypt_Randomized(t *testing.T) {
	box := newBox(t, "0123456789abcdef")

	first, err := box.Encrypt("kim@example.com")
	require.NoError(t, err)

	second, err := box.Encrypt("kim@example.com")
	require.NoError(t, err)

	// nonce случайный, поэтому шифртексты различаются
	assert.NotEqual(t, first, second)

	for _, ct := range []string{first, second} {
		plaintext, err := box.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, "kim@example.com", plaintext)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	boxA := newBox(t, "0123456789abcdef")
	boxB := newBox(t, "fedcba9876543210")

	ciphertext, err := boxA.Encrypt("kim@example.com")
	require.NoError(t, err)

	_, err = boxB.Decrypt(ciphertext)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecrypt_Malformed(t *testing.T) {
	box := newBox(t, "0123456789abcdef")

	tests := []struct {
		name       string
		ciphertext string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too short", "YWJj"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := box.Decrypt(tt.ciphertext)
			assert.ErrorIs(t, err, ErrDecryptionFailed)
		})
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	box := newBox(t, "0123456789abcdef")

	ciphertext, err := box.Encrypt("kim@example.com")
	require.NoError(t, err)

	tampered := []byte(ciphertext)
	tampered[len(tampered)-5] ^= 1

	_, err = box.Decrypt(string(tampered))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	box := newBox(t, "0123456789abcdef")

	first, err := box.HashPassword("secret123")
	require.NoError(t, err)

	second, err := box.HashPassword("secret123")
	require.NoError(t, err)

	// соль случайная: одинаковые пароли -> разные хэши
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, []byte("secret123"), first)

	assert.True(t, box.VerifyPassword("secret123", first))
	assert.True(t, box.VerifyPassword("secret123", second))
	assert.False(t, box.VerifyPassword("wrong", first))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	box := newBox(t, "0123456789abcdef")

	assert.False(t, box.VerifyPassword("secret123", []byte("not-a-bcrypt-hash")))
	assert.False(t, box.VerifyPassword("secret123", nil))
}
