package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态及各处理能力是否可用
// @Tags 健康检查
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	svc := GetContainer(c).GetProcessService()
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "upscayl",
		"capabilities": svc.Capabilities(),
	})
}
