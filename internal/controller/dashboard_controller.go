package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	AuthService      *service.AuthService
}

func NewDashboardController(dashboardService *service.DashboardService, authService *service.AuthService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService, AuthService: authService}
}

// Get godoc
// @Summary 首页聚合数据
// @Description 按角色返回学生或讲师视角的首页统计
// @Tags 首页
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/dashboard [get]
func (c *DashboardController) Get(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.ForUser(user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
