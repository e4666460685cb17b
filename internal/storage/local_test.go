package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, enabled bool) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), enabled)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return store
}

func TestLocalStoreWrite(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)

	result, err := store.Write(context.Background(), WriteInput{
		UserID:  "user-1",
		Purpose: PurposeProgress,
		Display: []byte("display-bytes"),
		Thumb:   []byte("thumb-bytes"),
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !strings.HasPrefix(result.OriginalKey, "users/user-1/progress/") {
		t.Errorf("OriginalKey = %q, want users/user-1/progress/ prefix", result.OriginalKey)
	}
	if !strings.HasSuffix(result.OriginalKey, "-original.jpg") {
		t.Errorf("OriginalKey = %q, want -original.jpg suffix", result.OriginalKey)
	}
	if !strings.HasSuffix(result.ThumbKey, "-thumb.jpg") {
		t.Errorf("ThumbKey = %q, want -thumb.jpg suffix", result.ThumbKey)
	}
	if want := "/api/uploads/" + result.OriginalKey; result.OriginalURL != want {
		t.Errorf("OriginalURL = %q, want %q", result.OriginalURL, want)
	}

	path, err := store.Resolve(result.OriginalKey)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(data) != "display-bytes" {
		t.Errorf("stored display = %q, want display-bytes", data)
	}
}

func TestLocalStoreKeysUnique(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)
	in := WriteInput{UserID: "user-1", Purpose: PurposeProgress, Display: []byte("a"), Thumb: []byte("b")}

	first, err := store.Write(context.Background(), in)
	if err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	second, err := store.Write(context.Background(), in)
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	if first.OriginalKey == second.OriginalKey {
		t.Errorf("both writes produced key %q, want unique keys", first.OriginalKey)
	}
}

func TestLocalStoreDisabled(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, false)

	_, err := store.Write(context.Background(), WriteInput{
		UserID:  "user-1",
		Purpose: PurposeProgress,
		Display: []byte("a"),
		Thumb:   []byte("b"),
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Write() error = %v, want ErrUnavailable", err)
	}
}

func TestLocalStoreRejectsInvalidPurpose(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)

	_, err := store.Write(context.Background(), WriteInput{
		UserID:  "user-1",
		Purpose: Purpose("scratch"),
		Display: []byte("a"),
		Thumb:   []byte("b"),
	})
	if err == nil {
		t.Fatal("Write() with invalid purpose succeeded, want error")
	}
}

func TestLocalStoreResolveConfinement(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, true)

	if _, err := store.Resolve("../outside.jpg"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("Resolve(traversal) error = %v, want os.ErrPermission", err)
	}
	if _, err := store.Resolve("users/u/progress/../../../../etc/passwd"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("Resolve(deep traversal) error = %v, want os.ErrPermission", err)
	}
	if _, err := store.Resolve(""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Resolve(empty) error = %v, want os.ErrNotExist", err)
	}

	path, err := store.Resolve("users/u/progress/x-original.jpg")
	if err != nil {
		t.Fatalf("Resolve(valid) error = %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("Resolve() = %q, want absolute path", path)
	}
}
