package objectstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/", slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveReturnsPublicURLAndWritesFile(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(context.Background(), "proof.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, "_proof.png") {
		t.Fatalf("expected sanitized original name in url, got %q", url)
	}

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(store.Dir(), key))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestSaveSanitizesHostileFilename(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(context.Background(), "../../etc/passwd", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	if strings.Contains(key, "/") {
		t.Fatalf("key must not contain path separators: %q", key)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), key)); err != nil {
		t.Fatalf("file missing inside store dir: %v", err)
	}
}

func TestSaveKeysAreUnique(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(context.Background(), "same.png", []byte("a"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.Save(context.Background(), "same.png", []byte("b"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct keys for identical names")
	}
}

func TestRemoveDeletesStoredObject(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(context.Background(), "proof.png", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(context.Background(), url); err != nil {
		t.Fatalf("remove: %v", err)
	}
	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	if _, err := os.Stat(filepath.Join(store.Dir(), key)); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, stat err=%v", err)
	}
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	store := newTestStore(t)

	if err := store.Remove(context.Background(), "http://elsewhere/image.png"); err != nil {
		t.Fatalf("foreign url: %v", err)
	}
	if err := store.Remove(context.Background(), "http://localhost:8080/uploads/missing.png"); err != nil {
		t.Fatalf("missing object: %v", err)
	}
	if err := store.Remove(context.Background(), "http://localhost:8080/uploads/../secret"); err != nil {
		t.Fatalf("traversal url: %v", err)
	}
}

func TestSaveHonorsContextCancellation(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Save(ctx, "proof.png", []byte("x")); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
