package imaging

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	// 注册标准解码器
	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"
)

// Decode 解码上传的图片字节流，返回图片和原始格式名
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// SavePNG 将图片无损编码为PNG写入path
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// ToNRGBA 归一化为带alpha通道的像素格式
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)
	return nrgba
}

// Clamp 当图片任一边超过maxDim时等比缩小，maxDim<=0时不处理
func Clamp(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return resize.Resize(uint(maxDim), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(maxDim), img, resize.Lanczos3)
}
