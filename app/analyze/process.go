package analyze

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/analyze/processors"
	"github.com/golangci/submission-evaluator/app/lib/mailbox"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Orchestrator runs polling cycles: every eligible message is processed to
// its terminal state, reply included, before the next one is fetched.
type Orchestrator struct {
	dialer    mailbox.Dialer
	processor processors.Processor
	marker    string
}

func NewOrchestrator(dialer mailbox.Dialer, processor processors.Processor, marker string) *Orchestrator {
	return &Orchestrator{
		dialer:    dialer,
		processor: processor,
		marker:    marker,
	}
}

// RunCycle returns one outcome per eligible message in mailbox order. Only
// mailbox failures before processing starts are returned as errors.
func (o Orchestrator) RunCycle(ctx context.Context) (outcomes []processors.Outcome, err error) {
	ctx = analytics.ContextWithTrackingProps(ctx, map[string]interface{}{
		"cycleID": uuid.NewString(),
	})

	startedAt := time.Now()
	defer func() {
		analytics.TrackCycle(startedAt, err)
	}()

	mb, err := o.dialer.Dial(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't open mailbox")
	}
	defer func() {
		if cerr := mb.Close(); cerr != nil {
			analytics.Log(ctx).Warnf("Can't close mailbox: %s", cerr)
		}
	}()

	ids, err := mb.Search(ctx, o.marker)
	if err != nil {
		return nil, errors.Wrapf(err, "can't search for %q messages", o.marker)
	}
	analytics.Log(ctx).Infof("Found %d new submissions", len(ids))

	for i, id := range ids {
		analytics.Log(ctx).Infof("Processing submission %d/%d (id %d)", i+1, len(ids), id)
		out := o.processWrapped(ctx, mb, id)
		analytics.Log(ctx).Infof("Submission %d processed: %s", id, out.Status)
		outcomes = append(outcomes, *out)
	}

	return outcomes, nil
}

func (o Orchestrator) processWrapped(ctx context.Context, mb mailbox.Mailbox, id uint32) (out *processors.Outcome) {
	submissionID := strconv.FormatUint(uint64(id), 10)
	fail := func(err error) *processors.Outcome {
		analytics.Log(ctx).Errorf("Skipping submission %s: %s", submissionID, err)
		analytics.TrackSubmissionStatus(string(processors.StatusFailed))
		return &processors.Outcome{
			SubmissionID: submissionID,
			Status:       processors.StatusFailed,
			Err:          err,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			out = fail(fmt.Errorf("panic recovered: %v", r))
		}
	}()

	raw, err := mb.Fetch(ctx, id)
	if err != nil {
		return fail(err)
	}

	sub, err := mailbox.Parse(submissionID, raw)
	if err != nil {
		return fail(err)
	}

	return o.processor.Process(ctx, sub)
}
