package handlers

import (
	"github.com/easayliu/upscayl-service/internal/application/services"
	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

// GetContainer 从gin.Context中获取ServiceContainer
// 假设Container已经通过ContainerMiddleware注入到Context中
func GetContainer(c *gin.Context) *services.ServiceContainer {
	container, exists := c.Get("container")
	if !exists {
		panic("ServiceContainer not found in context. Did you forget to use ContainerMiddleware?")
	}
	return container.(*services.ServiceContainer)
}

// GetConfig 从gin.Context中获取Config
func GetConfig(c *gin.Context) *config.Config {
	return GetContainer(c).GetConfig()
}
