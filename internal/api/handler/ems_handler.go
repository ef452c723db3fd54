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

type EmsHandler struct {
	svc service.EmsService
}

func NewEmsHandler(svc service.EmsService) *EmsHandler {
	return &EmsHandler{svc: svc}
}

// List EMS系统列表
// @Summary EMS系统列表 (按角色过滤与脱敏)
// @Tags EMS
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.EmsSystemResponse}
// @Router /ems-systems [get]
func (h *EmsHandler) List(c *gin.Context) {
	list, err := h.svc.List(middleware.CurrentUser(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, list)
}

// Create 创建EMS系统
// @Summary 创建EMS系统 (仅安全管理员)
// @Tags EMS
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEmsSystemRequest true "创建EMS系统请求"
// @Success 200 {object} responses.Response{data=dto.EmsSystemResponse}
// @Router /ems-systems [post]
func (h *EmsHandler) Create(c *gin.Context) {
	var req dto.CreateEmsSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}
	resp, err := h.svc.Create(middleware.CurrentUser(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, resp)
}
