package upscayl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/easayliu/upscayl-service/internal/infrastructure/config"
)

// writeFakeBinary 生成一个代替upscayl-bin的shell脚本
func writeFakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary tests require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "upscayl-bin")
	content := "#!/bin/sh\n" + script
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func newTestRunner(binaryPath string, timeoutSeconds int) *Runner {
	return NewRunner(&config.UpscaylConfig{
		BinaryPath:     binaryPath,
		Model:          "realesrgan-x4plus",
		OutputFormat:   "png",
		TimeoutSeconds: timeoutSeconds,
	})
}

func TestValidate(t *testing.T) {
	path := writeFakeBinary(t, "exit 0\n")
	if err := newTestRunner(path, 10).Validate(); err != nil {
		t.Fatalf("Validate failed for executable file: %v", err)
	}

	if err := newTestRunner(filepath.Join(t.TempDir(), "missing"), 10).Validate(); err == nil {
		t.Fatal("expected error for missing binary")
	}

	nonExec := filepath.Join(t.TempDir(), "upscayl-bin")
	if err := os.WriteFile(nonExec, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := newTestRunner(nonExec, 10).Validate(); err == nil {
		t.Fatal("expected error for non-executable binary")
	}
}

func TestRunSuccess(t *testing.T) {
	// 脚本把输入文件复制为输出文件，模拟成功的放大
	path := writeFakeBinary(t, `
while [ "$1" != "" ]; do
  case "$1" in
    -i) in="$2"; shift 2;;
    -o) out="$2"; shift 2;;
    *) shift;;
  esac
done
cp "$in" "$out"
`)
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.png")
	outputPath := filepath.Join(dir, "output.png")
	if err := os.WriteFile(inputPath, []byte("fake png"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := newTestRunner(path, 10).Run(context.Background(), inputPath, outputPath, 4); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestRunNonzeroExit(t *testing.T) {
	path := writeFakeBinary(t, "exit 1\n")
	dir := t.TempDir()
	err := newTestRunner(path, 10).Run(context.Background(), filepath.Join(dir, "in.png"), filepath.Join(dir, "out.png"), 4)
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
}

func TestRunMissingOutput(t *testing.T) {
	// 退出码为零但不生成输出文件
	path := writeFakeBinary(t, "exit 0\n")
	dir := t.TempDir()
	err := newTestRunner(path, 10).Run(context.Background(), filepath.Join(dir, "in.png"), filepath.Join(dir, "out.png"), 4)
	if err == nil {
		t.Fatal("expected error for missing output file")
	}
}

func TestRunTimeout(t *testing.T) {
	path := writeFakeBinary(t, "sleep 5\n")
	dir := t.TempDir()
	err := newTestRunner(path, 1).Run(context.Background(), filepath.Join(dir, "in.png"), filepath.Join(dir, "out.png"), 4)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
