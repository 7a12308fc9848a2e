package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepOrphans(t *testing.T) {
	fs, root := newTestFileService(t)
	ctx := context.Background()

	// 有元数据引用的 Blob
	referenced := uploadSample(t, fs, "keep.txt", "keep me", "")

	// 无引用的旧孤儿
	orphanPath := filepath.Join(root, "deadbeef_orphan.bin")
	if err := os.WriteFile(orphanPath, []byte("orphan"), 0o644); err != nil {
		t.Fatalf("write orphan: %v", err)
	}

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(orphanPath, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	// 无引用但新鲜的 Blob，处于宽限期内
	freshPath := filepath.Join(root, "cafebabe_fresh.bin")
	if err := os.WriteFile(freshPath, []byte("fresh"), 0o644); err != nil {
		t.Fatalf("write fresh: %v", err)
	}

	result, err := fs.SweepOrphans(ctx, time.Hour)
	if err != nil {
		t.Fatalf("SweepOrphans: %v", err)
	}

	if result.Removed != 1 {
		t.Errorf("removed = %d, want 1", result.Removed)
	}

	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}

	if _, err := os.Stat(orphanPath); !os.IsNotExist(err) {
		t.Error("old orphan should be removed")
	}

	if _, err := os.Stat(freshPath); err != nil {
		t.Error("fresh blob inside grace window should survive")
	}

	if _, err := os.Stat(filepath.Join(root, referenced.Locator)); err != nil {
		t.Error("referenced blob should survive")
	}
}
