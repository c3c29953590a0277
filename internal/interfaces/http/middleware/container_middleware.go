package middleware

import (
	"github.com/easayliu/upscayl-service/internal/application/services"
	"github.com/gin-gonic/gin"
)

// ContainerMiddleware 服务容器中间件
// 将ServiceContainer注入到gin.Context中,供handlers使用
func ContainerMiddleware(container *services.ServiceContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("container", container)
		c.Next()
	}
}
