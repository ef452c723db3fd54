package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

// ErrDecryptFailed 密文无法解密: 格式损坏、被篡改或密钥不匹配。
// 调用方应以 constants.DecryptFailedSentinel 替换单个字段, 不中断整体响应。
var ErrDecryptFailed = fmt.Errorf("解密失败: 密文损坏或密钥不匹配")

// HashPassword 哈希密码 (bcrypt), 仅用于用户登录口令, 不用于存储的凭据密文
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword 验证密码
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Cipher 对称加密器 (AES-GCM), 进程内唯一, 密钥启动时注入且不可变
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher 创建加密器, key长度必须是16/24/32字节
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("创建AES密钥失败: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("创建GCM失败: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromBase64 从base64编码的密钥创建加密器
func NewCipherFromBase64(key string) (*Cipher, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("解析加密密钥失败: %w", err)
	}
	return NewCipher(raw)
}

// GenerateKey 生成32字节随机密钥, 返回base64编码
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Encrypt AES-GCM加密, 返回 base64(nonce || ciphertext)
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt AES-GCM解密, 任何形式的失败均返回ErrDecryptFailed
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecryptFailed
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrDecryptFailed
	}

	nonce, data := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, data, nil)
	if err != nil {
		// 认证失败: 被篡改或密钥不一致, 不区分具体原因
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}
