package local

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
)

// minimal valid PNG header
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore("", 10); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if _, err := NewStore(t.TempDir(), 0); err == nil {
		t.Fatal("expected error for zero max size")
	}
}

func TestSaveImageWritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.SaveImage(pngBytes)
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file under %s, got %s", dir, path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected .png extension, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if len(data) != len(pngBytes) {
		t.Fatalf("stored %d bytes, expected %d", len(data), len(pngBytes))
	}
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = store.SaveImage([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected rejection for text payload")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestSaveImageRejectsEmptyAndOversized(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.SaveImage(nil); err == nil {
		t.Fatal("expected rejection for empty payload")
	}

	big := make([]byte, store.MaxBytes()+1)
	copy(big, pngBytes)
	if _, err := store.SaveImage(big); err == nil {
		t.Fatal("expected rejection for oversized payload")
	}
}
