package cryptobox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minKeyLen = 16

var (
	ErrEmptyKey         = errors.New("encryption key is empty")
	ErrEmptyPlaintext   = errors.New("plaintext is empty")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// CryptoBox шифрует одно строковое поле симметричным ключом процесса
// и хэширует пароли секретных постов. Ключ задаётся один раз при старте.
type CryptoBox struct {
	aead cipher.AEAD
}

// New создаёт CryptoBox. Пустой ключ — фатальная ошибка конфигурации,
// короткий ключ допускается, но пишется предупреждение в лог.
func New(key []byte, log *zap.Logger) (*CryptoBox, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	if len(key) < minKeyLen {
		log.Warn("Encryption key is shorter than recommended",
			zap.Int("length", len(key)),
			zap.Int("recommended", minKeyLen),
		)
	}

	// Ключ любой длины приводим к 256 битам
	derived := sha256.Sum256(key)

	block, err := aes.NewCipher(derived[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}

	return &CryptoBox{aead: aead}, nil
}

// Encrypt шифрует plaintext (AES-256-GCM) со свежим случайным nonce.
// Результат самодостаточен: base64(nonce || ciphertext), для Decrypt
// никакого внешнего состояния не нужно.
func (c *CryptoBox) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt возвращает исходную строку. Битый ввод или чужой ключ дают
// ошибку аутентификации GCM, а не мусор на выходе.
func (c *CryptoBox) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	if len(raw) < c.aead.NonceSize() {
		return "", ErrDecryptionFailed
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// HashPassword — bcrypt со случайной солью на каждый вызов,
// одинаковые пароли дают разные хэши.
func (c *CryptoBox) HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password hash: %w", err)
	}

	return hash, nil
}

// VerifyPassword — сравнение с постоянным временем, false на любое
// несовпадение, включая битый хэш.
func (c *CryptoBox) VerifyPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
