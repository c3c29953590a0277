package telegram

import (
	"fmt"

	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client Telegram客户端，仅用于向运维聊天推送处理失败通知
type Client struct {
	config *config.TelegramConfig
	bot    *tgbotapi.BotAPI
}

// NewClient 创建客户端，token无效时bot为nil，发送调用会返回错误
func NewClient(cfg *config.TelegramConfig) *Client {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to create Telegram bot", "error", err)
		return &Client{
			config: cfg,
			bot:    nil,
		}
	}

	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName)

	return &Client{
		config: cfg,
		bot:    bot,
	}
}

// SendMessage 发送HTML格式消息给指定聊天
func (c *Client) SendMessage(chatID int64, text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot is not connected")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// Broadcast 发送消息给所有配置的聊天，单个失败不阻止其余发送
func (c *Client) Broadcast(text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot is not connected")
	}

	var lastErr error
	for _, chatID := range c.config.ChatIDs {
		if err := c.SendMessage(chatID, text); err != nil {
			logger.Error("Failed to send telegram message", "chat_id", chatID, "error", err)
			lastErr = err
		}
	}
	return lastErr
}
