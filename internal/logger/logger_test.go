package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := NewContext(context.Background(), l)
	if L(ctx) != l {
		t.Fatal("L did not return the stored logger")
	}
	if L(context.Background()) == nil {
		t.Fatal("L returned nil without a stored logger")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapeme.log")
	l, err := New(false, path)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("checkpoint", zap.Int64("gen", 100))
	_ = l.Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"gen":100`) {
		t.Fatalf("log file missing field: %s", data)
	}
}
