package fetchers

import (
	"context"
	"path/filepath"

	"github.com/golangci/submission-evaluator/app/lib/executors"
	"github.com/sirupsen/logrus"
)

type Git struct {
	exec executors.Executor
}

var _ Fetcher = Git{}

func NewGit() *Git {
	return &Git{}
}

func (gf Git) Fetch(ctx context.Context, url, destDir string) error {
	exec := gf.exec
	if exec == nil {
		exec = executors.NewShell(filepath.Dir(destDir))
	}
	// never wait for credentials: nonexistent github repos ask for them
	exec = exec.WithEnv("GIT_TERMINAL_PROMPT", "0")

	args := []string{"clone", "-q", "--depth", "1", url, destDir}
	if out, err := exec.Run(ctx, "git", args...); err != nil {
		logrus.Warnf("git clone of %s failed: %s, out is %q", url, err, out)
		return newCloneError(url, gitFailureReason(out), destDir)
	}

	return nil
}
