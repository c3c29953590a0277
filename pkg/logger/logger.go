package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug/info/warn/error
	Format    string // text/json
	Output    string // console/file/both
	FilePath  string // Output为file或both时的日志文件路径
	Colorize  bool   // 控制台输出时是否为级别着色
	AddSource bool   // 是否记录调用位置
}

var (
	mu       sync.RWMutex
	levelVar slog.LevelVar
	instance = slog.Default()
)

// Init 初始化全局日志器
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}
	levelVar.Set(level)

	var w io.Writer = os.Stdout
	if opts.Output == "file" || opts.Output == "both" {
		if opts.FilePath == "" {
			return fmt.Errorf("log file path is required for file output")
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		if opts.Output == "both" {
			w = io.MultiWriter(os.Stdout, f)
		} else {
			w = f
		}
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     &levelVar,
		AddSource: opts.AddSource,
	}
	// 写文件时不着色，避免日志文件混入ANSI转义
	if opts.Colorize && opts.Output == "console" && opts.Format != "json" {
		handlerOpts.ReplaceAttr = colorizeLevel
	}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	mu.Lock()
	instance = slog.New(handler)
	mu.Unlock()
	return nil
}

// SetLevel 运行时调整日志级别
func SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(l)
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// colorizeLevel 为级别字段加ANSI颜色，仅控制台text格式时使用
func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	var color string
	switch {
	case level >= slog.LevelError:
		color = "\033[31m" // 红
	case level >= slog.LevelWarn:
		color = "\033[33m" // 黄
	case level >= slog.LevelInfo:
		color = "\033[32m" // 绿
	default:
		color = "\033[36m" // 青
	}
	a.Value = slog.StringValue(color + level.String() + "\033[0m")
	return a
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

func Debug(msg string, args ...any) {
	get().Debug(msg, SanitizeArgs(args...)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, SanitizeArgs(args...)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, SanitizeArgs(args...)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, SanitizeArgs(args...)...)
}
