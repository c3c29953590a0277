package contracts

import "context"

// NotificationLevel 通知级别
type NotificationLevel string

const (
	NotificationLevelInfo  NotificationLevel = "info"
	NotificationLevelError NotificationLevel = "error"
)

// NotificationRequest 通知请求
type NotificationRequest struct {
	Title   string
	Message string
	Level   NotificationLevel
}

// NotificationService 通知服务接口
// IsEnabled为false时SendNotification返回错误
type NotificationService interface {
	SendNotification(ctx context.Context, req NotificationRequest) error
	IsEnabled() bool
}
