package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"pfolio_backend/internal/service"
	"pfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// GetOverview godoc
// @Summary 全局统计
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Overview} "成功"
// @Router /api/admin/overview [get]
func (c *AdminController) GetOverview(ctx *gin.Context) {
	util.Success(ctx, c.AdminService.Overview())
}

// ListTeachers godoc
// @Summary 教师列表
// @Description 每位教师及其实践、研讨会数量
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TeacherSummary} "成功"
// @Router /api/admin/teachers [get]
func (c *AdminController) ListTeachers(ctx *gin.Context) {
	util.Success(ctx, c.AdminService.ListTeachers())
}

// GetPortfolio godoc
// @Summary 教师档案
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "教师ID"
// @Success 200 {object} util.Response{data=service.Portfolio} "成功"
// @Failure 404 {object} util.Response "教师不存在"
// @Router /api/admin/teachers/{id}/portfolio [get]
func (c *AdminController) GetPortfolio(ctx *gin.Context) {
	portfolio, err := c.AdminService.Portfolio(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, portfolio)
}

// ExportPortfolio godoc
// @Summary 导出教师档案
// @Description 下载xlsx，包含 Practices 和 Seminars 两个工作表
// @Tags 管理员
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param   id path string true "教师ID"
// @Success 200 {file} file "xlsx"
// @Failure 404 {object} util.Response "教师不存在"
// @Router /api/admin/teachers/{id}/portfolio/export [get]
func (c *AdminController) ExportPortfolio(ctx *gin.Context) {
	teacherID := ctx.Param("id")

	// 先写入缓冲区，出错时仍可返回JSON
	var buf bytes.Buffer
	if err := c.AdminService.ExportPortfolio(teacherID, &buf); err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="portfolio-%s.xlsx"`, teacherID))
	ctx.Data(http.StatusOK, util.MimeXLSX, buf.Bytes())
}
