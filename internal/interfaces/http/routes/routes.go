package routes

import (
	"github.com/easayliu/upscayl-service/internal/application/services"
	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/internal/interfaces/http/handlers"
	"github.com/easayliu/upscayl-service/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes 设置路由
// /process与/upscale保留在根路径,与旧客户端保持兼容
func SetupRoutes(cfg *config.Config, container *services.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ContainerMiddleware(container))
	router.Use(middleware.ErrorHandlerMiddleware())

	// 上传大小硬限制
	router.Use(middleware.BodyLimitMiddleware(cfg.Processing.MaxUploadMB))
	// multipart解析的内存缓冲阈值,超出部分落盘
	router.MaxMultipartMemory = cfg.Processing.MaxUploadMB << 20

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	processHandler := handlers.NewProcessHandler()

	router.POST("/process", processHandler.ProcessImage)
	router.POST("/upscale", processHandler.UpscaleImage) // 旧版接口
	router.GET("/health", handlers.HealthCheck)

	return router
}
