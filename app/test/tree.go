package test

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files (slash-separated paths relative to root) with the given contents.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		fpath := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			t.Fatalf("can't make dir for %s: %s", name, err)
		}
		if err := os.WriteFile(fpath, []byte(content), 0644); err != nil {
			t.Fatalf("can't write %s: %s", name, err)
		}
	}
}
