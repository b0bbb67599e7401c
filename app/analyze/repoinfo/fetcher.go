package repoinfo

import (
	"context"

	"github.com/golangci/submission-evaluator/app/utils/github"
	"github.com/pkg/errors"
)

//go:generate mockgen -package repoinfo -source fetcher.go -destination fetcher_mock.go

// Info is hosting metadata of a submitted repository.
type Info struct {
	FullName      string
	Description   string `json:",omitempty"`
	Language      string `json:",omitempty"`
	DefaultBranch string
	Stars         int
	Forks         int
	Private       bool
}

type Fetcher interface {
	Fetch(ctx context.Context, repoURL string) (*Info, error)
}

type GithubFetcher struct {
	client github.Client
}

var _ Fetcher = &GithubFetcher{}

func NewGithubFetcher(client github.Client) *GithubFetcher {
	return &GithubFetcher{
		client: client,
	}
}

func (f GithubFetcher) Fetch(ctx context.Context, repoURL string) (*Info, error) {
	repo, err := github.ParseRepo(repoURL)
	if err != nil {
		return nil, err
	}

	r, err := f.client.GetRepository(ctx, repo)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get repo info of %s", repo.FullName())
	}

	return &Info{
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		DefaultBranch: r.GetDefaultBranch(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Private:       r.GetPrivate(),
	}, nil
}
