package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"herptracker/internal/adapters/blob/core"
)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := s.Put(ctx, "abc.png", strings.NewReader("png-bytes"), "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}

	info, rc, err := s.Get(ctx, "abc.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "png-bytes" {
		t.Fatalf("unexpected body %q", string(b))
	}
	if info.Size != int64(len("png-bytes")) {
		t.Fatalf("unexpected size %d", info.Size)
	}
	if info.ContentType != "image/png" {
		t.Fatalf("unexpected content type %q", info.ContentType)
	}

	// sobrescribe
	if err := s.Put(ctx, "abc.png", strings.NewReader("v2"), "image/png"); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}

	ok, err := s.Delete(ctx, "abc.png")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(ctx, "abc.png")
	if err != nil || ok {
		t.Fatalf("second delete should report missing: ok=%v err=%v", ok, err)
	}

	if _, _, err := s.Get(ctx, "abc.png"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_RejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for _, key := range []string{"", "../x.png", "a/b.png", `a\b.png`, ".."} {
		if err := s.Put(context.Background(), key, strings.NewReader("x"), ""); !errors.Is(err, core.ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Put(context.Background(), "one.jpg", strings.NewReader("x"), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "one.jpg" {
		t.Fatalf("unexpected dir contents: %v", entries)
	}
	if _, err := os.Stat(filepath.Join(dir, "one.jpg")); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
