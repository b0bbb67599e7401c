package reporters

import (
	"context"

	"github.com/golangci/submission-evaluator/app/lib/mailbox"
)

//go:generate mockgen -package reporters -source reporter.go -destination reporter_mock.go

type Reporter interface {
	// Report answers the submitter and everyone the submission was CC'd to.
	Report(ctx context.Context, sub *mailbox.Submission, body string) error
	// ReportFailure answers the submitter only.
	ReportFailure(ctx context.Context, sub *mailbox.Submission, body string) error
}
