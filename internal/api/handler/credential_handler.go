package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"account-manager/internal/api/middleware"
	"account-manager/internal/dto"
	"account-manager/internal/service"
	"account-manager/pkg/responses"
	"account-manager/pkg/utils"
)

type CredentialHandler struct {
	svc service.CredentialService
}

func NewCredentialHandler(svc service.CredentialService) *CredentialHandler {
	return &CredentialHandler{svc: svc}
}

// Create 创建凭据
// @Summary 创建个人凭据
// @Tags Credential
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCredentialRequest true "创建凭据请求"
// @Success 200 {object} responses.Response{data=dto.CredentialResponse}
// @Router /credentials [post]
func (h *CredentialHandler) Create(c *gin.Context) {
	var req dto.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.svc.Create(middleware.CurrentUser(c).ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// List 列表
// @Summary 当前用户的凭据列表
// @Tags Credential
// @Produce json
// @Security BearerAuth
// @Param skip query int false "偏移量"
// @Param limit query int false "返回条数上限, 默认100"
// @Success 200 {object} responses.Response{data=[]dto.CredentialResponse}
// @Router /credentials [get]
func (h *CredentialHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	list, err := h.svc.List(middleware.CurrentUser(c).ID, skip, limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, list)
}

// Update 更新凭据
// @Summary 更新个人凭据
// @Tags Credential
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "凭据ID"
// @Param request body dto.UpdateCredentialRequest true "更新凭据请求"
// @Success 200 {object} responses.Response{data=dto.CredentialResponse}
// @Router /credentials/{id} [put]
func (h *CredentialHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的 ID", err.Error())
		return
	}
	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.svc.Update(id, middleware.CurrentUser(c).ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// Delete 删除凭据
// @Summary 删除个人凭据
// @Tags Credential
// @Produce json
// @Security BearerAuth
// @Param id path int true "凭据ID"
// @Success 200 {object} responses.Response
// @Router /credentials/{id} [delete]
func (h *CredentialHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的 ID", err.Error())
		return
	}
	if err := h.svc.Delete(id, middleware.CurrentUser(c).ID); err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, nil)
}
