package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"pfolio_backend/internal/service"
	"pfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// PracticeRequest 教学实践表单，证明文件字段为 proof
type PracticeRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date" binding:"required"`
}

func (r PracticeRequest) input() service.PracticeInput {
	return service.PracticeInput{Title: r.Title, Description: r.Description, Date: r.Date}
}

// SeminarRequest 研讨会表单，证明文件字段为 proof
type SeminarRequest struct {
	Title    string `form:"title" json:"title" binding:"required"`
	FromDate string `form:"fromDate" json:"fromDate" binding:"required"`
	ToDate   string `form:"toDate" json:"toDate" binding:"required"`
}

func (r SeminarRequest) input() service.SeminarInput {
	return service.SeminarInput{Title: r.Title, FromDate: r.FromDate, ToDate: r.ToDate}
}

// uploadError reports a failed form read. A body cut off by the size
// limit counts as an oversized proof.
func uploadError(ctx *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, util.ErrProofTooLarge):
		handleServiceError(ctx, err)
	case errors.As(err, &tooLarge):
		handleServiceError(ctx, fmt.Errorf("%w: request over %d bytes", util.ErrProofTooLarge, tooLarge.Limit))
	default:
		util.BadRequest(ctx, err.Error())
	}
}

func bindForm(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBind(req); err != nil {
		uploadError(ctx, err)
		return false
	}
	return true
}

// readProof returns the optional "proof" upload, or nil when none was sent.
// Oversized uploads are rejected on their declared size, before opening.
func (c *ActivityController) readProof(ctx *gin.Context) (*service.ProofFile, error) {
	fh, err := ctx.FormFile("proof")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := c.ActivityService.CheckProofSize(fh.Size); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.ProofFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ListActivities godoc
// @Summary 我的教学活动
// @Description 当前教师自己的教学实践和研讨会
// @Tags 教学活动
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Activities} "成功"
// @Router /api/activities [get]
func (c *ActivityController) ListActivities(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.ActivityService.ListOwn(user))
}

// CreatePractice godoc
// @Summary 提交教学实践
// @Description 可附带PDF证明，服务端生成摘要
// @Tags 教学活动
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   title formData string true "标题"
// @Param   description formData string false "描述"
// @Param   date formData string true "日期 YYYY-MM-DD"
// @Param   proof formData file false "PDF证明"
// @Success 201 {object} util.Response{data=model.Practice} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "仅教师可提交"
// @Failure 413 {object} util.Response "证明文件过大"
// @Router /api/practices [post]
func (c *ActivityController) CreatePractice(ctx *gin.Context) {
	var req PracticeRequest
	if !bindForm(ctx, &req) {
		return
	}
	proof, err := c.readProof(ctx)
	if err != nil {
		uploadError(ctx, err)
		return
	}

	practice, err := c.ActivityService.SubmitPractice(ctx.Request.Context(), util.GetUserFromContext(ctx), req.input(), proof)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, practice)
}

// UpdatePractice godoc
// @Summary 修改教学实践
// @Description 不附带新证明时保留原证明和摘要；不存在的ID不做任何修改
// @Tags 教学活动
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "实践ID"
// @Success 200 {object} util.Response{data=model.Practice} "成功"
// @Failure 403 {object} util.Response "非本人记录"
// @Router /api/practices/{id} [put]
func (c *ActivityController) UpdatePractice(ctx *gin.Context) {
	var req PracticeRequest
	if !bindForm(ctx, &req) {
		return
	}
	proof, err := c.readProof(ctx)
	if err != nil {
		uploadError(ctx, err)
		return
	}

	practice, err := c.ActivityService.UpdatePractice(ctx.Request.Context(), util.GetUserFromContext(ctx), ctx.Param("id"), req.input(), proof)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, practice)
}

// DeletePractice godoc
// @Summary 删除教学实践
// @Tags 教学活动
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "实践ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非本人记录"
// @Router /api/practices/{id} [delete]
func (c *ActivityController) DeletePractice(ctx *gin.Context) {
	if err := c.ActivityService.DeletePractice(ctx.Request.Context(), util.GetUserFromContext(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// CreateSeminar godoc
// @Summary 提交研讨会
// @Tags 教学活动
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   title formData string true "标题"
// @Param   fromDate formData string true "开始日期"
// @Param   toDate formData string true "结束日期"
// @Param   proof formData file false "PDF证明"
// @Success 201 {object} util.Response{data=model.Seminar} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/seminars [post]
func (c *ActivityController) CreateSeminar(ctx *gin.Context) {
	var req SeminarRequest
	if !bindForm(ctx, &req) {
		return
	}
	proof, err := c.readProof(ctx)
	if err != nil {
		uploadError(ctx, err)
		return
	}

	seminar, err := c.ActivityService.SubmitSeminar(ctx.Request.Context(), util.GetUserFromContext(ctx), req.input(), proof)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, seminar)
}

// UpdateSeminar godoc
// @Summary 修改研讨会
// @Tags 教学活动
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "研讨会ID"
// @Success 200 {object} util.Response{data=model.Seminar} "成功"
// @Router /api/seminars/{id} [put]
func (c *ActivityController) UpdateSeminar(ctx *gin.Context) {
	var req SeminarRequest
	if !bindForm(ctx, &req) {
		return
	}
	proof, err := c.readProof(ctx)
	if err != nil {
		uploadError(ctx, err)
		return
	}

	seminar, err := c.ActivityService.UpdateSeminar(ctx.Request.Context(), util.GetUserFromContext(ctx), ctx.Param("id"), req.input(), proof)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, seminar)
}

// DeleteSeminar godoc
// @Summary 删除研讨会
// @Tags 教学活动
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "研讨会ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/seminars/{id} [delete]
func (c *ActivityController) DeleteSeminar(ctx *gin.Context) {
	if err := c.ActivityService.DeleteSeminar(ctx.Request.Context(), util.GetUserFromContext(ctx), ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
