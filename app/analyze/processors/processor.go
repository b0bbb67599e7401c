package processors

import (
	"context"

	"github.com/golangci/submission-evaluator/app/analyze/report"
	"github.com/golangci/submission-evaluator/app/lib/mailbox"
)

type Processor interface {
	// Process never returns an error: every failure ends up in the outcome.
	Process(ctx context.Context, sub *mailbox.Submission) *Outcome
}

// Outcome is the terminal state of one submission.
type Outcome struct {
	SubmissionID string
	Status       Status
	Reference    string

	Recommendation report.Recommendation
	ArtifactPath   string
	Err            error
}
