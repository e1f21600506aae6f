package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMirrorWrite(t *testing.T) {
	root := t.TempDir()
	mirror := NewMirror(root)

	path, err := mirror.Write("series-1/episodes.json", []byte(`{"episodes":[]}`))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	expected := filepath.Join(root, "series-1", "episodes.json")
	if path != expected {
		t.Errorf("Expected path %s, got %s", expected, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read mirrored file: %v", err)
	}
	if string(data) != `{"episodes":[]}` {
		t.Errorf("Unexpected file content: %s", data)
	}
}

func TestMirrorWriteOverwrites(t *testing.T) {
	mirror := NewMirror(t.TempDir())

	if _, err := mirror.Write("index.json", []byte("v1")); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	path, err := mirror.Write("index.json", []byte("v2"))
	if err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("Expected overwrite, got %s", data)
	}
}

func TestMirrorWriteUnwritableRoot(t *testing.T) {
	root := t.TempDir()
	// A file where the directory should be makes MkdirAll fail
	blocker := filepath.Join(root, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	mirror := NewMirror(blocker)
	if _, err := mirror.Write("a/b.json", []byte("{}")); err == nil {
		t.Error("Expected write under a non-directory root to fail")
	}
}
