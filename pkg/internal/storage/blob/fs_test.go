package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	store, err := NewFSStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStoreAt: %v", err)
	}

	return store
}

func TestFSStorePutOpen(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	content := []byte("hello blob")

	written, err := store.Put(ctx, "abc_report.txt", bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if written != int64(len(content)) {
		t.Fatalf("written = %d, want %d", written, len(content))
	}

	rc, err := store.Open(ctx, "abc_report.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if !bytes.Equal(got, content) {
		t.Fatalf("content = %q, want %q", got, content)
	}
}

func TestFSStorePutDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Put(ctx, "dup.bin", strings.NewReader("one"), 3); err != nil {
		t.Fatalf("first Put: %v", err)
	}

	if _, err := store.Put(ctx, "dup.bin", strings.NewReader("two"), 3); err == nil {
		t.Fatal("second Put with same locator should fail")
	}
}

func TestFSStoreOpenMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Open(ctx, "missing.bin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open missing = %v, want ErrNotFound", err)
	}

	if _, err := store.Stat(ctx, "missing.bin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Stat missing = %v, want ErrNotFound", err)
	}
}

func TestFSStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Put(ctx, "gone.bin", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.Remove(ctx, "gone.bin"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if err := store.Remove(ctx, "gone.bin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Remove = %v, want ErrNotFound", err)
	}
}

func TestFSStoreList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, name := range []string{"a.bin", "b.bin", "c.bin"} {
		if _, err := store.Put(ctx, name, strings.NewReader("x"), 1); err != nil {
			t.Fatalf("Put %s: %v", name, err)
		}
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
}

func TestValidateLocator(t *testing.T) {
	valid := []string{"abc_report.txt", "550e8400_photo.png", "noext"}
	for _, loc := range valid {
		if err := ValidateLocator(loc); err != nil {
			t.Errorf("ValidateLocator(%q) = %v, want nil", loc, err)
		}
	}

	invalid := []string{"", "..", "a/b", `a\b`, "../etc/passwd", "x..y"}
	for _, loc := range invalid {
		if err := ValidateLocator(loc); err == nil {
			t.Errorf("ValidateLocator(%q) = nil, want error", loc)
		}
	}
}
