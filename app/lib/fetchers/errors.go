package fetchers

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CloneError is safe to show to the submitter: it never holds clone tool
// output or local paths.
type CloneError struct {
	URL    string
	Reason string
}

func (e CloneError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("can't clone %s", e.URL)
	}
	return fmt.Sprintf("can't clone %s: %s", e.URL, e.Reason)
}

// newCloneError keeps reason only when it says nothing about local paths.
func newCloneError(url, reason, destDir string) *CloneError {
	reason = strings.TrimSpace(reason)
	if strings.Contains(reason, filepath.Dir(destDir)) {
		reason = ""
	}
	return &CloneError{URL: url, Reason: reason}
}

// gitFailureReason is the last "fatal:" line git printed.
func gitFailureReason(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); strings.HasPrefix(line, "fatal: ") {
			return strings.TrimPrefix(line, "fatal: ")
		}
	}
	return ""
}
