package rembg

import (
	"context"
	"errors"
	"image"
)

// ErrUnavailable 背景去除能力不可用
var ErrUnavailable = errors.New("background removal is not available")

// Remover 背景去除接口
// 接收内存中的图片,返回背景透明化后的图片
type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
	Available() bool
}

// DisabledRemover 禁用的背景去除实现
// rembg工具缺失或被配置关闭时由容器注入,所有调用返回ErrUnavailable
type DisabledRemover struct{}

// NewDisabledRemover 创建禁用实现
func NewDisabledRemover() Remover {
	return &DisabledRemover{}
}

func (d *DisabledRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	return nil, ErrUnavailable
}

func (d *DisabledRemover) Available() bool {
	return false
}
