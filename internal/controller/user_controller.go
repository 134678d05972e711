package controller

import (
	"pfolio_backend/internal/service"
	"pfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type UpdateProfileRequest struct {
	Name           string `json:"name" binding:"required"`
	Contact        string `json:"contact"`
	Qualifications string `json:"qualifications"`
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 仅可修改姓名、联系方式和资历
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "个人资料"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.UserService.UpdateProfile(user.ID, service.ProfileUpdate{
		Name:           req.Name,
		Contact:        req.Contact,
		Qualifications: req.Qualifications,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}
