package rembg

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestDisabledRemover(t *testing.T) {
	r := NewDisabledRemover()
	if r.Available() {
		t.Fatal("disabled remover must not report available")
	}
	_, err := r.Remove(context.Background(), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDetectMissing(t *testing.T) {
	if _, err := Detect("definitely-not-a-real-binary-name"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func writeFakeRembg(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary tests require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "rembg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestCLIRemoverPassthrough(t *testing.T) {
	// 脚本原样回写stdin,输出仍是合法PNG
	path := writeFakeRembg(t, "cat\n")
	r := NewCLIRemover(path, 10*time.Second)

	if !r.Available() {
		t.Fatal("CLI remover must report available")
	}

	src := image.NewNRGBA(image.Rect(0, 0, 5, 7))
	out, err := r.Remove(context.Background(), src)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if out.Bounds().Dx() != 5 || out.Bounds().Dy() != 7 {
		t.Errorf("unexpected bounds: %v", out.Bounds())
	}
}

func TestCLIRemoverFailure(t *testing.T) {
	path := writeFakeRembg(t, "exit 1\n")
	r := NewCLIRemover(path, 10*time.Second)

	_, err := r.Remove(context.Background(), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
}

func TestCLIRemoverGarbageOutput(t *testing.T) {
	path := writeFakeRembg(t, "echo garbage\n")
	r := NewCLIRemover(path, 10*time.Second)

	_, err := r.Remove(context.Background(), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil {
		t.Fatal("expected error for non-png output")
	}
}
