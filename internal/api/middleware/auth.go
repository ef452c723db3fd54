package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"account-manager/internal/model"
	"account-manager/internal/service"
	"account-manager/pkg/constants"
	"account-manager/pkg/responses"
)

// AuthMiddleware JWT认证中间件
//
// Bearer Token → 验证签名与有效期 → 回查存活用户, 任何一步失败即401;
// 失败响应带 WWW-Authenticate 提示。认证失败短路后续处理, 无任何副作用。
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "缺少Authorization Header")
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			abortUnauthorized(c, "Authorization格式错误")
			return
		}

		// 提取并解析Token, 回查用户
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)
		user, err := authService.ResolveUser(token)
		if err != nil {
			c.Header(constants.HeaderWWWAuthenticate, "Bearer")
			responses.Error(c, err)
			c.Abort()
			return
		}

		// 将用户存入context
		c.Set(constants.JWTContextKey, user)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header(constants.HeaderWWWAuthenticate, "Bearer")
	responses.ErrorWithCode(c, responses.CodeUnauthorized, message)
	c.Abort()
}

// CurrentUser 从context中取出已认证用户
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(constants.JWTContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
