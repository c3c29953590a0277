package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/easayliu/upscayl-service/docs"
	"github.com/easayliu/upscayl-service/internal/application/services"
	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/internal/interfaces/http/routes"
	"github.com/easayliu/upscayl-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// @title Upscayl Service API
// @version 1.0
// @description 图片放大与背景去除HTTP服务,封装upscayl-bin与rembg外部工具

// @license.name MIT

// @host localhost:5001
// @BasePath /
// @schemes http
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务容器,失败时带诊断信息退出(二进制缺失/不可执行等)
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}

	// 初始化路由
	router := routes.SetupRoutes(cfg, container)

	// 设置信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Starting server", "address", addr)
		if err := router.Run(addr); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	<-quit
	logger.Info("Shutting down server...")
	container.Shutdown()
	logger.Info("Server stopped")
}
