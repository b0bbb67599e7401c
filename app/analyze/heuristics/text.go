package heuristics

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// readText reads at most limit bytes of a regular file as text: undecodable
// bytes are dropped and line endings are normalized so that lengths don't
// depend on the checkout platform. Symlinks aren't followed.
func readText(path string, limit int64) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("%s isn't a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", err
	}

	content = bytes.ToValidUTF8(content, nil)
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
	return string(content), nil
}
