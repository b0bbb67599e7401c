package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/golangci/submission-evaluator/app/utils/httputils"
)

type APIStorage struct {
	host   string
	client httputils.Client
}

var _ Storage = &APIStorage{}

func NewAPIStorage(host string, client httputils.Client) *APIStorage {
	if client == nil {
		client = httputils.GrequestsClient{}
	}
	return &APIStorage{
		host:   strings.TrimSuffix(host, "/"),
		client: client,
	}
}

func (s APIStorage) getStateURL(submissionID string) string {
	return fmt.Sprintf("%s/v1/submissions/%s/state", s.host, submissionID)
}

func (s APIStorage) UpdateState(ctx context.Context, submissionID string, state *State) error {
	if err := s.client.PutJSON(ctx, s.getStateURL(submissionID), state); err != nil {
		return fmt.Errorf("can't update state of submission %s: %s", submissionID, err)
	}

	return nil
}
