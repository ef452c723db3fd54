package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-manager/internal/api/middleware"
	"account-manager/internal/dto"
	"account-manager/internal/service"
	"account-manager/pkg/responses"
	"account-manager/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 登录换取Token
// @Summary 登录
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param auth_type formData string false "ldap/local, 缺省local"
// @Success 200 {object} responses.Response{data=dto.LoginResponse}
// @Router /token [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.authService.Login(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// GetMe 当前用户信息
// @Summary 当前用户
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=dto.UserInfo}
// @Router /users/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		responses.Error(c, responses.ErrUnauthorized)
		return
	}
	responses.Success(c, service.ToUserInfo(user))
}
