package contracts

import (
	"context"
	"io"
)

// ProcessAction 图片处理动作
type ProcessAction string

const (
	ActionUpscale          ProcessAction = "upscale"
	ActionRemoveBackground ProcessAction = "remove_bg"
)

// ProcessRequest 图片处理请求
// Scale为0时使用配置的默认倍数，仅对upscale有效
type ProcessRequest struct {
	Action   ProcessAction
	Scale    int
	Filename string
	Data     io.Reader
}

// ProcessResponse 图片处理结果
// OutputPath指向临时输出文件，调用方负责在传输完成后删除
type ProcessResponse struct {
	OutputPath   string
	DownloadName string
	ContentType  string
}

// ProcessCapabilities 当前可用的处理能力
type ProcessCapabilities struct {
	Upscale          bool `json:"upscale"`
	RemoveBackground bool `json:"remove_bg"`
}

// ProcessService 图片处理服务接口
type ProcessService interface {
	ProcessImage(ctx context.Context, req ProcessRequest) (*ProcessResponse, error)
	Capabilities() ProcessCapabilities
}
