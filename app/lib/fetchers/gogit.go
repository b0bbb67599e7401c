package fetchers

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// GoGit clones in-process, so the host doesn't need a git binary.
type GoGit struct {
	depth int
}

var _ Fetcher = GoGit{}

func NewGoGit() *GoGit {
	return &GoGit{
		depth: 1,
	}
}

func (gf GoGit) Fetch(ctx context.Context, url, destDir string) error {
	_, err := git.PlainCloneContext(ctx, destDir, false, &git.CloneOptions{
		URL:   url,
		Depth: gf.depth,
	})
	if err != nil {
		logrus.Warnf("go-git clone of %s failed: %s", url, err)
		return newCloneError(url, err.Error(), destDir)
	}

	return nil
}
