package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/easayliu/upscayl-service/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Janitor 临时文件清理器
// 正常请求自己清理临时文件对；这里兜底扫掉进程崩溃时遗留的文件
type Janitor struct {
	cron     *cron.Cron
	dir      string
	maxAge   time.Duration
	interval time.Duration
	mu       sync.Mutex
	running  bool
}

// NewJanitor 创建清理器
func NewJanitor(dir string, interval, maxAge time.Duration) *Janitor {
	return &Janitor{
		cron:     cron.New(),
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Start 启动周期清理
func (j *Janitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return fmt.Errorf("janitor already running")
	}

	spec := fmt.Sprintf("@every %s", j.interval)
	if _, err := j.cron.AddFunc(spec, func() {
		if n := j.Sweep(); n > 0 {
			logger.Info("Swept stale temp artifacts", "count", n, "dir", j.dir)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	j.cron.Start()
	j.running = true
	logger.Info("Temp cleanup started", "dir", j.dir, "interval", j.interval.String(), "max_age", j.maxAge.String())
	return nil
}

// Stop 停止周期清理
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		j.cron.Stop()
		j.running = false
		logger.Info("Temp cleanup stopped")
	}
}

// Sweep 删除超过maxAge的临时文件，返回删除数量
// 只清理本服务命名格式(input_*/output_*)的文件
func (j *Janitor) Sweep() int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		logger.Warn("Failed to read temp dir", "dir", j.dir, "error", err)
		return 0
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "input_") && !strings.HasPrefix(name, "output_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(j.dir, name)); err != nil {
			logger.Warn("Failed to remove stale artifact", "name", name, "error", err)
			continue
		}
		removed++
	}
	return removed
}
