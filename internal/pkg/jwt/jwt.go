package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"account-manager/pkg/constants"
	pkgErrors "account-manager/pkg/responses"
)

// UserClaims 用户Claims
type UserClaims struct {
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	Team              string `json:"team"`
	IsSecurityManager bool   `json:"is_security_manager"`
	AuthType          string `json:"auth_type"` // ldap or local
	Type              string `json:"type"`      // access
	jwt.RegisteredClaims
}

// Manager 签发和验证Token, secret与有效期启动时注入
type Manager struct {
	secret []byte
	expire time.Duration
}

// NewManager 创建Token管理器, expireSeconds<=0时取默认30分钟
func NewManager(secret string, expireSeconds int) *Manager {
	expire := time.Duration(expireSeconds) * time.Second
	if expire <= 0 {
		expire = 30 * time.Minute
	}
	return &Manager{
		secret: []byte(secret),
		expire: expire,
	}
}

// Expire 返回Token有效期
func (m *Manager) Expire() time.Duration {
	return m.expire
}

// GenerateAccessToken 生成访问Token
func (m *Manager) GenerateAccessToken(username, fullName, team, authType string, isSecurityManager bool) (string, error) {
	claims := UserClaims{
		Username:          username,
		FullName:          fullName,
		Team:              team,
		IsSecurityManager: isSecurityManager,
		AuthType:          authType,
		Type:              constants.JWTTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证Token (签名、有效期)
func (m *Manager) ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, pkgErrors.ErrInvalidToken
	}

	if claims.Type != constants.JWTTypeAccess {
		return nil, pkgErrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, pkgErrors.ErrInvalidToken
	}

	return claims, nil
}
