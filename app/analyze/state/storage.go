package state

import (
	"context"
)

//go:generate mockgen -package state -source storage.go -destination storage_mock.go

const (
	StatusProcessing = "processing"
)

// State is what's known about one submission so far.
type State struct {
	Status         string
	Sender         string
	Reference      string      `json:",omitempty"`
	Recommendation string      `json:",omitempty"`
	ArtifactPath   string      `json:",omitempty"`
	Error          string      `json:",omitempty"`
	ResultJSON     interface{} `json:",omitempty"`
}

type Storage interface {
	UpdateState(ctx context.Context, submissionID string, state *State) error
}

// NopStorage is used when no state API is configured.
type NopStorage struct{}

func (NopStorage) UpdateState(context.Context, string, *State) error {
	return nil
}
