package fetchers

import (
	"context"
	"fmt"
)

//go:generate mockgen -package fetchers -source fetcher.go -destination fetcher_mock.go

// Fetcher obtains a local copy of the repository at url inside destDir.
// destDir must exist and be empty.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) error
}

const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

func New(backend string) (Fetcher, error) {
	switch backend {
	case "", BackendGit:
		return NewGit(), nil
	case BackendGoGit:
		return NewGoGit(), nil
	}

	return nil, fmt.Errorf("unknown clone backend %q", backend)
}
