package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mirror writes published JSON to a local filesystem tree mirroring the blob
// store's relative layout. It exists as a development convenience and offline
// fallback; durability is the blob store's job, so callers are expected to
// log and swallow mirror failures (a read-only deployment target is normal).
type Mirror struct {
	root string
}

// NewMirror creates a mirror rooted at the public data directory
func NewMirror(root string) *Mirror {
	return &Mirror{root: root}
}

// Write stores the object under the same relative path the blob store uses
// and returns the local path written
func (m *Mirror) Write(relPath string, data []byte) (string, error) {
	target := filepath.Join(m.root, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create mirror directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write mirror file: %w", err)
	}
	return target, nil
}
