package controller

import (
	"pfolio_backend/internal/repository"
	"pfolio_backend/internal/service"
	"pfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store   *repository.Store
	AI      *service.AIService
	Storage *service.StorageService
}

func NewHealthController(store *repository.Store, ai *service.AIService, storage *service.StorageService) *HealthController {
	return &HealthController{Store: store, AI: ai, Storage: storage}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	enrichment := "fallback"
	if c.AI.Configured() {
		enrichment = "configured"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"store":      c.Store.Counts(),
			"enrichment": enrichment,
			"storage":    c.Storage.Provider.Name(),
		},
	})
}
