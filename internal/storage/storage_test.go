package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSaveStoresImageWithDetectedExtension(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 1<<20)

	name, err := store.Save("journal_images", bytes.NewReader(pngBytes(t)))
	if err != nil {
		t.Fatalf("save image: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected .png extension, got %q", name)
	}

	path, err := store.Path("journal_images", name)
	if err != nil {
		t.Fatalf("resolve path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	names, err := store.List("journal_images")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != name {
		t.Fatalf("unexpected listing: %v", names)
	}
}

func TestSaveRejectsNonImages(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 1<<20)

	if _, err := store.Save("journal_images", strings.NewReader("not an image")); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestSaveRejectsOversizedUploads(t *testing.T) {
	data := pngBytes(t)
	store := NewLocalStore(t.TempDir(), int64(len(data)-1))

	if _, err := store.Save("journal_images", bytes.NewReader(data)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	store := NewLocalStore(filepath.Join(root, "uploads"), 0)

	cases := []struct{ folder, name string }{
		{"..", "secret.txt"},
		{"journal_images", "../../secret.txt"},
		{"journal_images", ".."},
	}
	for _, tc := range cases {
		if _, err := store.Path(tc.folder, tc.name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName for %q/%q, got %v", tc.folder, tc.name, err)
		}
	}

	if _, err := store.Path("journal_images", "missing.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMissingFolderIsEmpty(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 0)

	names, err := store.List("journal_images")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty listing, got %v", names)
	}
}
