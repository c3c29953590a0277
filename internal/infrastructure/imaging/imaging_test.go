package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func newTestImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, newTestImage(10, 10)); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("expected format png, got %s", format)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("unexpected bounds: %v", img.Bounds())
	}
}

func TestDecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, newTestImage(8, 6), nil); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}

	_, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected format jpeg, got %s", format)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected error for invalid data")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(newTestImage(4, 4), path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("written file is not valid png: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("unexpected width: %d", img.Bounds().Dx())
	}
}

func TestToNRGBA(t *testing.T) {
	src := newTestImage(3, 3)
	nrgba := ToNRGBA(src)
	if nrgba.Bounds() != src.Bounds() {
		t.Errorf("bounds changed: %v != %v", nrgba.Bounds(), src.Bounds())
	}

	// 已经是NRGBA时原样返回
	again := ToNRGBA(nrgba)
	if again != nrgba {
		t.Error("expected same instance for NRGBA input")
	}
}

func TestClamp(t *testing.T) {
	small := newTestImage(10, 20)
	if got := Clamp(small, 100); got != small {
		t.Error("image within limit should be returned unchanged")
	}
	if got := Clamp(small, 0); got != small {
		t.Error("maxDim 0 disables clamping")
	}

	wide := newTestImage(200, 100)
	clamped := Clamp(wide, 50)
	if clamped.Bounds().Dx() != 50 {
		t.Errorf("expected width 50, got %d", clamped.Bounds().Dx())
	}
	if clamped.Bounds().Dy() != 25 {
		t.Errorf("expected height 25, got %d", clamped.Bounds().Dy())
	}

	tall := newTestImage(100, 200)
	clamped = Clamp(tall, 50)
	if clamped.Bounds().Dy() != 50 {
		t.Errorf("expected height 50, got %d", clamped.Bounds().Dy())
	}
	if clamped.Bounds().Dx() != 25 {
		t.Errorf("expected width 25, got %d", clamped.Bounds().Dx())
	}
}
