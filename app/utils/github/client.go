package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -package github -source client.go -destination client_mock.go

var ErrRepoNotFound = errors.New("no such repository")
var ErrUnauthorized = errors.New("invalid authorization")

type Repo struct {
	Owner, Name string
}

func (r Repo) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// ParseRepo extracts owner and name from a repository URL like https://github.com/owner/name.
func ParseRepo(repoURL string) (*Repo, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return nil, fmt.Errorf("can't parse repo url %q: %s", repoURL, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("no owner and name in repo url %q", repoURL)
	}

	return &Repo{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}

type Client interface {
	GetRepository(ctx context.Context, repo *Repo) (*gh.Repository, error)
}

type MyClient struct {
	accessToken string
}

var _ Client = &MyClient{}

func NewMyClient(accessToken string) *MyClient {
	return &MyClient{
		accessToken: accessToken,
	}
}

func transformGithubError(err error) error {
	if er, ok := err.(*gh.ErrorResponse); ok && er.Response != nil {
		if er.Response.StatusCode == http.StatusNotFound {
			logrus.Warnf("Got 404 from github: %+v", er)
			return ErrRepoNotFound
		}
		if er.Response.StatusCode == http.StatusUnauthorized {
			logrus.Warnf("Got 401 from github: %+v", er)
			return ErrUnauthorized
		}
	}

	return nil
}

func (gc *MyClient) GetRepository(ctx context.Context, repo *Repo) (*gh.Repository, error) {
	r, _, err := NewClient(ctx, gc.accessToken).Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		if terr := transformGithubError(err); terr != nil {
			return nil, terr
		}

		return nil, fmt.Errorf("can't get repo %s from github: %s", repo.FullName(), err)
	}

	return r, nil
}
