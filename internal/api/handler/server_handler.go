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

type ServerHandler struct {
	svc service.ServerService
}

func NewServerHandler(svc service.ServerService) *ServerHandler {
	return &ServerHandler{svc: svc}
}

// List 服务器安全信息列表
// @Summary 服务器安全信息列表 (不含口令)
// @Tags ServerSecurity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.ServerSecurityResponse}
// @Router /server-security [get]
func (h *ServerHandler) List(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, list)
}

// GetPasswords 服务器特权账号口令
// @Summary 服务器特权账号口令 (未登记槽位省略)
// @Tags ServerSecurity
// @Produce json
// @Security BearerAuth
// @Param id path int true "服务器ID"
// @Success 200 {object} responses.Response{data=dto.ServerPasswordsResponse}
// @Router /server-security/{id}/passwords [get]
func (h *ServerHandler) GetPasswords(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的 ID", err.Error())
		return
	}
	resp, err := h.svc.GetPasswords(id)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// UpdateAccounts 变更服务器账号
// @Summary 变更服务器特权账号 (仅安全管理员, 仅更新出现的字段)
// @Tags ServerSecurity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "服务器ID"
// @Param request body dto.UpdateServerAccountsRequest true "账号变更请求"
// @Success 200 {object} responses.Response
// @Router /server-security/{id}/accounts [put]
func (h *ServerHandler) UpdateAccounts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的 ID", err.Error())
		return
	}
	var req dto.UpdateServerAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	if err := h.svc.UpdateAccounts(middleware.CurrentUser(c), id, &req); err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, nil)
}

// CreateChecklistItem 创建检查项
// @Summary 创建合规检查项 (仅安全管理员)
// @Tags ServerSecurity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChecklistItemRequest true "创建检查项请求"
// @Success 200 {object} responses.Response{data=dto.ChecklistItemResponse}
// @Router /checklist-items [post]
func (h *ServerHandler) CreateChecklistItem(c *gin.Context) {
	var req dto.CreateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.svc.CreateChecklistItem(middleware.CurrentUser(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}

// UpdateChecklistItem 更新检查项状态
// @Summary 更新合规检查项状态 (仅安全管理员)
// @Tags ServerSecurity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "检查项ID"
// @Param request body dto.UpdateChecklistItemRequest true "更新检查项请求"
// @Success 200 {object} responses.Response
// @Router /checklist-items/{id} [put]
func (h *ServerHandler) UpdateChecklistItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "无效的 ID", err.Error())
		return
	}
	var req dto.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	if err := h.svc.UpdateChecklistItem(middleware.CurrentUser(c), id, &req); err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, nil)
}
