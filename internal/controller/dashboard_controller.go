package controller

import (
	"pfolio_backend/internal/service"
	"pfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

type DashboardResponse struct {
	Tab  service.Tab   `json:"tab"`
	Tabs []service.Tab `json:"tabs"`
	View service.View  `json:"view"`
}

// @Summary 获取仪表盘数据
// @Description 按标签页组合视图：home, profile, activities, management(仅管理员)
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tab query string false "标签页" Enums(home, profile, activities, management)
// @Success 200 {object} util.Response{data=DashboardResponse}
// @Failure 400 {object} util.Response "未知标签页"
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tab, err := service.ParseTab(ctx.Query("tab"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	view, err := c.DashboardService.Compose(user, tab)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, DashboardResponse{
		Tab:  tab,
		Tabs: service.AvailableTabs(user.Role),
		View: view,
	})
}
