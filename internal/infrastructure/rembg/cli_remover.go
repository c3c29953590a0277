package rembg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"time"

	"github.com/easayliu/upscayl-service/pkg/logger"
)

// CLIRemover 基于rembg命令行工具的背景去除实现
// 图片以PNG形式经stdin送入 `rembg i`,结果从stdout读回
type CLIRemover struct {
	binaryPath string
	timeout    time.Duration
}

// NewCLIRemover 创建CLI实现,binaryPath须为LookPath解析后的绝对路径
func NewCLIRemover(binaryPath string, timeout time.Duration) *CLIRemover {
	if timeout <= 0 {
		timeout = 600 * time.Second
	}
	return &CLIRemover{
		binaryPath: binaryPath,
		timeout:    timeout,
	}
}

// Detect 在PATH中查找rembg工具
func Detect(binaryName string) (string, error) {
	return exec.LookPath(binaryName)
}

func (r *CLIRemover) Available() bool {
	return true
}

// Remove 调用rembg去除背景
func (r *CLIRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return nil, fmt.Errorf("failed to encode input image: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.binaryPath, "i")
	cmd.Stdin = &input

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			logger.Error("rembg process timed out", "timeout", r.timeout.String())
			return nil, fmt.Errorf("rembg timed out after %s", r.timeout)
		}
		logger.Error("rembg failed", "error", err, "stderr", stderr.String())
		return nil, fmt.Errorf("rembg exited with error: %w", err)
	}

	result, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rembg output: %w", err)
	}
	return result, nil
}
