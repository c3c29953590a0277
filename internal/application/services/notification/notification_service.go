package notification

import (
	"context"
	"fmt"

	"github.com/easayliu/upscayl-service/internal/application/contracts"
	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/internal/infrastructure/telegram"
)

// AppNotificationService 应用层通知服务 - 实现contracts.NotificationService接口
// 未启用Telegram时所有发送调用返回错误，调用方自行决定是否忽略
type AppNotificationService struct {
	config         *config.Config
	telegramClient *telegram.Client
}

// NewAppNotificationService 创建应用通知服务
func NewAppNotificationService(cfg *config.Config) contracts.NotificationService {
	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient = telegram.NewClient(&cfg.Telegram)
	}

	return &AppNotificationService{
		config:         cfg,
		telegramClient: telegramClient,
	}
}

// IsEnabled 通知功能是否可用
func (s *AppNotificationService) IsEnabled() bool {
	return s.telegramClient != nil
}

// SendNotification 发送通知给所有配置的聊天
func (s *AppNotificationService) SendNotification(ctx context.Context, req contracts.NotificationRequest) error {
	if s.telegramClient == nil {
		return fmt.Errorf("notifications are not enabled")
	}

	var prefix string
	if req.Level == contracts.NotificationLevelError {
		prefix = "❌ "
	}
	message := fmt.Sprintf("<b>%s%s</b>\n\n%s", prefix, req.Title, req.Message)
	return s.telegramClient.Broadcast(message)
}
