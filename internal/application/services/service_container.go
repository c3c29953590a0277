package services

import (
	"fmt"
	"os"
	"time"

	"github.com/easayliu/upscayl-service/internal/application/contracts"
	"github.com/easayliu/upscayl-service/internal/application/services/cleanup"
	"github.com/easayliu/upscayl-service/internal/application/services/notification"
	"github.com/easayliu/upscayl-service/internal/application/services/process"
	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/internal/infrastructure/ratelimit"
	"github.com/easayliu/upscayl-service/internal/infrastructure/rembg"
	"github.com/easayliu/upscayl-service/internal/infrastructure/upscayl"
	"github.com/easayliu/upscayl-service/pkg/logger"
)

// ServiceContainer 应用服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	processService      contracts.ProcessService
	notificationService contracts.NotificationService
	janitor             *cleanup.Janitor
}

// NewServiceContainer 创建服务容器
// 启动时校验: 临时目录可创建、upscayl二进制存在且可执行，失败立即返回错误
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	container := &ServiceContainer{
		config: cfg,
	}

	// 1. 基础设施校验
	if err := os.MkdirAll(cfg.Processing.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir %s: %w", cfg.Processing.TempDir, err)
	}

	runner := upscayl.NewRunner(&cfg.Upscayl)
	if err := runner.Validate(); err != nil {
		return nil, fmt.Errorf("upscayl validation failed: %w", err)
	}
	logger.Info("Upscayl binary validated", "path", cfg.Upscayl.BinaryPath, "model", cfg.Upscayl.Model)

	// 2. 背景去除能力检测，缺失时注入禁用实现而不是失败
	remover := detectRemover(cfg)

	// 3. 应用服务
	container.notificationService = notification.NewAppNotificationService(cfg)
	container.processService = process.NewAppProcessService(
		cfg,
		runner,
		remover,
		ratelimit.NewRateLimiter(cfg.Processing.QPS),
		container.notificationService,
	)

	// 4. 临时文件兜底清理
	if cfg.Cleanup.Enabled {
		container.janitor = cleanup.NewJanitor(
			cfg.Processing.TempDir,
			time.Duration(cfg.Cleanup.IntervalMinutes)*time.Minute,
			time.Duration(cfg.Cleanup.MaxAgeMinutes)*time.Minute,
		)
		if err := container.janitor.Start(); err != nil {
			return nil, fmt.Errorf("failed to start cleanup: %w", err)
		}
	}

	return container, nil
}

// NewServiceContainerWithProcessService 注入现成的处理服务，测试用
func NewServiceContainerWithProcessService(cfg *config.Config, processService contracts.ProcessService) *ServiceContainer {
	return &ServiceContainer{
		config:         cfg,
		processService: processService,
	}
}

// detectRemover 在PATH中查找rembg工具，决定remove_bg能力
func detectRemover(cfg *config.Config) rembg.Remover {
	if !cfg.Rembg.Enabled {
		logger.Info("Background removal disabled by config")
		return rembg.NewDisabledRemover()
	}
	path, err := rembg.Detect(cfg.Rembg.BinaryPath)
	if err != nil {
		logger.Warn("rembg not found, continuing without background removal", "binary", cfg.Rembg.BinaryPath)
		return rembg.NewDisabledRemover()
	}
	logger.Info("rembg detected", "path", path)
	timeout := time.Duration(cfg.Rembg.TimeoutSeconds) * time.Second
	return rembg.NewCLIRemover(path, timeout)
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetProcessService 获取图片处理服务
func (c *ServiceContainer) GetProcessService() contracts.ProcessService {
	return c.processService
}

// GetNotificationService 获取通知服务
func (c *ServiceContainer) GetNotificationService() contracts.NotificationService {
	return c.notificationService
}

// Shutdown 停止后台组件
func (c *ServiceContainer) Shutdown() {
	if c.janitor != nil {
		c.janitor.Stop()
	}
}
