package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter 外部处理进程的启动频率限制器
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter 创建新的速率限制器
// qps: 每秒允许启动的处理数，如果为0或负数则不限制
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		return &RateLimiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// 令牌桶，允许短时间内的突发（桶大小为QPS）
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(qps), qps),
	}
}

// Wait 等待直到获得令牌，请求上下文取消时返回错误
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow 检查是否允许当前请求，不阻塞
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetQPS 动态设置QPS限制
func (r *RateLimiter) SetQPS(qps int) {
	if qps <= 0 {
		r.limiter.SetLimit(rate.Inf)
		r.limiter.SetBurst(1)
	} else {
		r.limiter.SetLimit(rate.Limit(qps))
		r.limiter.SetBurst(qps)
	}
}

// GetQPS 获取当前QPS限制，0表示无限制
func (r *RateLimiter) GetQPS() int {
	limit := r.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return int(limit)
}
