package upscayl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
	"github.com/easayliu/upscayl-service/pkg/logger"
)

// ErrTimeout 外部进程超时
var ErrTimeout = errors.New("upscayl process timed out")

// Runner Upscayl NCNN二进制封装
type Runner struct {
	binaryPath string
	model      string
	format     string
	timeout    time.Duration
}

// NewRunner 创建Runner
func NewRunner(cfg *config.UpscaylConfig) *Runner {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 600 * time.Second
	}
	return &Runner{
		binaryPath: cfg.BinaryPath,
		model:      cfg.Model,
		format:     cfg.OutputFormat,
		timeout:    timeout,
	}
}

// Validate 启动时校验二进制存在且可执行
func (r *Runner) Validate() error {
	info, err := os.Stat(r.binaryPath)
	if err != nil {
		return fmt.Errorf("upscayl binary not found at %s: %w", r.binaryPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("upscayl binary path %s is a directory", r.binaryPath)
	}
	if info.Mode()&0111 == 0 {
		return fmt.Errorf("upscayl binary at %s is not executable", r.binaryPath)
	}
	return nil
}

// Run 放大图片，阻塞直到进程结束或超时
// 退出码非零、超时或输出文件缺失均视为失败
func (r *Runner) Run(ctx context.Context, inputPath, outputPath string, scale int) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binaryPath,
		"-i", inputPath,
		"-o", outputPath,
		"-s", strconv.Itoa(scale),
		"-m", r.model,
		"-f", r.format,
	)
	// 模型文件按约定放在二进制同级目录下
	cmd.Dir = filepath.Dir(r.binaryPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Info("Running upscayl", "input", inputPath, "output", outputPath, "scale", scale, "model", r.model)

	err := cmd.Run()
	if stdout.Len() > 0 {
		logger.Debug("Upscayl stdout", "output", stdout.String())
	}
	if stderr.Len() > 0 {
		logger.Debug("Upscayl stderr", "output", stderr.String())
	}

	if ctx.Err() == context.DeadlineExceeded {
		logger.Error("Upscayl process timed out", "timeout", r.timeout.String())
		return ErrTimeout
	}
	if err != nil {
		logger.Error("Upscayl failed", "error", err, "stderr", stderr.String())
		return fmt.Errorf("upscayl exited with error: %w", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		logger.Error("Upscayl output file missing", "path", outputPath)
		return fmt.Errorf("upscayl produced no output at %s", outputPath)
	}
	return nil
}
