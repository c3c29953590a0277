package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/easayliu/upscayl-service/internal/application/contracts"
	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/internal/infrastructure/imaging"
	"github.com/easayliu/upscayl-service/internal/infrastructure/ratelimit"
	"github.com/easayliu/upscayl-service/internal/infrastructure/rembg"
	"github.com/easayliu/upscayl-service/internal/infrastructure/upscayl"
	"github.com/easayliu/upscayl-service/pkg/logger"
	"github.com/google/uuid"
)

// Upscaler 放大执行器接口
type Upscaler interface {
	Run(ctx context.Context, inputPath, outputPath string, scale int) error
}

// AppProcessService 应用层图片处理服务 - 负责业务流程编排
// 每个请求生成独立的临时文件对(input_<uuid>.png / output_<uuid>.png)，
// 请求结束时两个文件都会被删除
type AppProcessService struct {
	config   *config.Config
	upscaler Upscaler
	remover  rembg.Remover
	limiter  *ratelimit.RateLimiter
	notifier contracts.NotificationService
}

// NewAppProcessService 创建图片处理服务
func NewAppProcessService(cfg *config.Config, upscaler Upscaler, remover rembg.Remover, limiter *ratelimit.RateLimiter, notifier contracts.NotificationService) contracts.ProcessService {
	return &AppProcessService{
		config:   cfg,
		upscaler: upscaler,
		remover:  remover,
		limiter:  limiter,
		notifier: notifier,
	}
}

// Capabilities 返回当前可用的处理能力
func (s *AppProcessService) Capabilities() contracts.ProcessCapabilities {
	return contracts.ProcessCapabilities{
		Upscale:          true, // 二进制在启动时已校验
		RemoveBackground: s.remover.Available(),
	}
}

// ProcessImage 执行一次图片处理
// 成功时返回输出文件路径，调用方负责在传输后删除输出文件
func (s *AppProcessService) ProcessImage(ctx context.Context, req contracts.ProcessRequest) (*contracts.ProcessResponse, error) {
	switch req.Action {
	case contracts.ActionUpscale, contracts.ActionRemoveBackground:
	default:
		return nil, contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
			fmt.Sprintf("invalid action specified: %s", req.Action))
	}

	scale := req.Scale
	if scale == 0 {
		scale = s.config.Upscayl.DefaultScale
	}
	if req.Action == contracts.ActionUpscale && (scale < 1 || scale > s.config.Upscayl.MaxScale) {
		return nil, contracts.NewServiceError(contracts.ErrorCodeInvalidRequest,
			fmt.Sprintf("scale must be between 1 and %d", s.config.Upscayl.MaxScale))
	}

	// 能力检查先于任何文件写入
	if req.Action == contracts.ActionRemoveBackground && !s.remover.Available() {
		return nil, contracts.NewServiceError(contracts.ErrorCodeServiceUnavailable,
			"background removal is not available")
	}

	img, format, err := imaging.Decode(req.Data)
	if err != nil {
		return nil, contracts.NewServiceErrorWithCause(contracts.ErrorCodeInvalidRequest,
			"uploaded file is not a valid image", err)
	}
	img = imaging.Clamp(img, s.config.Processing.MaxInputDimension)

	// 每个请求独立的临时文件对，UUID保证并发请求不冲突
	artifactID := uuid.New().String()
	inputPath := filepath.Join(s.config.Processing.TempDir, "input_"+artifactID+".png")
	outputPath := filepath.Join(s.config.Processing.TempDir, "output_"+artifactID+".png")

	if err := imaging.SavePNG(img, inputPath); err != nil {
		return nil, contracts.NewServiceErrorWithCause(contracts.ErrorCodeInternalError,
			"failed to persist uploaded image", err)
	}
	// 无论处理结果如何，输入文件在尝试后必定删除
	defer removeQuietly(inputPath)

	logger.Info("Processing image", "action", req.Action, "artifact_id", artifactID,
		"filename", req.Filename, "format", format)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, contracts.NewServiceErrorWithCause(contracts.ErrorCodeRateLimit,
			"processing capacity exhausted", err)
	}

	var procErr error
	switch req.Action {
	case contracts.ActionUpscale:
		procErr = s.upscaler.Run(ctx, inputPath, outputPath, scale)
	case contracts.ActionRemoveBackground:
		result, rerr := s.remover.Remove(ctx, imaging.ToNRGBA(img))
		if rerr != nil {
			procErr = rerr
		} else {
			procErr = imaging.SavePNG(result, outputPath)
		}
	}

	if procErr == nil {
		if _, err := os.Stat(outputPath); err != nil {
			procErr = fmt.Errorf("output file missing at %s", outputPath)
		}
	}

	if procErr != nil {
		removeQuietly(outputPath)
		s.notifyFailure(req.Action, artifactID, procErr)

		switch {
		case errors.Is(procErr, upscayl.ErrTimeout):
			return nil, contracts.NewServiceErrorWithCause(contracts.ErrorCodeTimeout,
				fmt.Sprintf("failed to %s image: processing timed out", actionVerb(req.Action)), procErr)
		case errors.Is(procErr, rembg.ErrUnavailable):
			return nil, contracts.NewServiceError(contracts.ErrorCodeServiceUnavailable,
				"background removal is not available")
		default:
			return nil, contracts.NewServiceErrorWithCause(contracts.ErrorCodeInternalError,
				fmt.Sprintf("failed to %s image", actionVerb(req.Action)), procErr)
		}
	}

	return &contracts.ProcessResponse{
		OutputPath:   outputPath,
		DownloadName: downloadName(req.Action, req.Filename),
		ContentType:  "image/png",
	}, nil
}

// notifyFailure 推送处理失败通知，尽力而为，不影响主流程
func (s *AppProcessService) notifyFailure(action contracts.ProcessAction, artifactID string, cause error) {
	if s.notifier == nil || !s.notifier.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.notifier.SendNotification(ctx, contracts.NotificationRequest{
			Title:   "Image processing failed",
			Message: fmt.Sprintf("action: %s\nartifact: %s\nerror: %v", action, artifactID, cause),
			Level:   contracts.NotificationLevelError,
		})
		if err != nil {
			logger.Warn("Failed to send failure notification", "error", err)
		}
	}()
}

// actionVerb 错误消息中动作的可读形式
func actionVerb(action contracts.ProcessAction) string {
	return strings.ReplaceAll(string(action), "_", " ")
}

// downloadName 根据动作和原始文件名合成下载文件名
func downloadName(action contracts.ProcessAction, filename string) string {
	prefix := "upscaled"
	if action == contracts.ActionRemoveBackground {
		prefix = "nobg"
	}
	base := filepath.Base(filename)
	if base == "." || base == "/" || base == "" {
		base = "image.png"
	}
	return prefix + "_" + base
}

// removeQuietly 删除临时文件，清理失败不能掩盖主结果，只记日志
func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove temp file", "path", path, "error", err)
	}
}
