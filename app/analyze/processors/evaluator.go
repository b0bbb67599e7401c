package processors

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/analyze/artifacts"
	"github.com/golangci/submission-evaluator/app/analyze/extract"
	"github.com/golangci/submission-evaluator/app/analyze/heuristics"
	"github.com/golangci/submission-evaluator/app/analyze/report"
	"github.com/golangci/submission-evaluator/app/analyze/reporters"
	"github.com/golangci/submission-evaluator/app/analyze/repoinfo"
	"github.com/golangci/submission-evaluator/app/analyze/state"
	"github.com/golangci/submission-evaluator/app/lib/errorutils"
	"github.com/golangci/submission-evaluator/app/lib/fetchers"
	"github.com/golangci/submission-evaluator/app/lib/mailbox"
	"github.com/golangci/submission-evaluator/app/lib/workspaces"
	"github.com/pkg/errors"
)

// Deps are the collaborators of an Evaluator. Fetcher, Runner and State get
// defaults when nil; Store and Reporter are required for Process.
type Deps struct {
	Fetcher  fetchers.Fetcher
	Runner   heuristics.Runner
	Store    *artifacts.Store
	Reporter reporters.Reporter
	State    state.Storage
	RepoInfo repoinfo.Fetcher // optional
}

type Evaluator struct {
	workspaceDir string
	Deps
}

var _ Processor = &Evaluator{}

func NewEvaluator(workspaceDir string, deps Deps) *Evaluator {
	if deps.Fetcher == nil {
		deps.Fetcher = fetchers.NewGit()
	}
	if deps.Runner == nil {
		deps.Runner = heuristics.NewSuite(heuristics.DefaultRules)
	}
	if deps.State == nil {
		deps.State = state.NopStorage{}
	}

	return &Evaluator{
		workspaceDir: workspaceDir,
		Deps:         deps,
	}
}

// Evaluate snapshots the repository into a fresh workspace, runs the
// heuristics and composes the report. The workspace is removed on return.
func (e Evaluator) Evaluate(ctx context.Context, ref string) (*report.Report, error) {
	ws, err := workspaces.Acquire(ctx, e.workspaceDir)
	if err != nil {
		return nil, errorutils.NewInternalError("can't prepare workspace", err)
	}
	defer ws.Clean()

	startedAt := time.Now()
	if err = e.Fetcher.Fetch(ctx, ref, ws.Dir()); err != nil {
		return nil, &EvaluationError{Stage: StageSnapshot, Reference: ref, Err: err, workspace: ws.Dir()}
	}
	analytics.Log(ctx).Infof("Cloned %s in %s", ref, time.Since(startedAt))

	res, err := e.Runner.Run(ctx, ws.Dir())
	if err != nil {
		return nil, &EvaluationError{Stage: StageAnalysis, Reference: ref, Err: err, workspace: ws.Dir()}
	}

	rep := report.Compose(ref, res)
	analytics.SaveEventProps(ctx, analytics.EventSubmissionEvaluated, map[string]interface{}{
		"readmeScore":    res.Readme.Score,
		"promptScore":    res.Prompts.Score,
		"fileCount":      res.Architecture.FileCount,
		"aiLibraries":    len(res.AILibraries.Detected),
		"recommendation": string(rep.Recommendation),
	})

	return rep, nil
}

func (e Evaluator) Process(ctx context.Context, sub *mailbox.Submission) *Outcome {
	ctx = analytics.ContextWithEventPropsCollector(ctx, analytics.EventSubmissionEvaluated)
	ctx = analytics.ContextWithTrackingProps(ctx, map[string]interface{}{
		"submissionID": sub.ID,
		"messageID":    sub.MessageID,
		"submitter":    sub.FromAddress,
	})

	out := &Outcome{
		SubmissionID: sub.ID,
		Reference:    extract.FindReference(sub.Body),
	}
	if out.Reference == "" {
		out.Status = StatusNoReference
		analytics.Log(ctx).Infof("No repository reference in %q from %s, skip it", sub.Subject, sub.From)
		analytics.TrackSubmissionStatus(string(out.Status))
		return out
	}

	ctx = analytics.ContextWithTrackingProps(ctx, map[string]interface{}{
		"reference": out.Reference,
	})
	analytics.Log(ctx).Infof("Evaluating %s submitted by %s", out.Reference, sub.From)

	startedAt := time.Now()
	e.updateState(ctx, sub, out, &state.State{Status: state.StatusProcessing})

	err := e.work(ctx, sub, out)
	if err != nil {
		if out.Status == "" {
			out.Status = StatusFailed
		}
		out.Err = err
		analytics.Log(ctx).Errorf("Processing of submission %s failed: %s", sub.ID, err)
	}

	s := &state.State{Status: string(out.Status)}
	if err != nil {
		s.Error = internalError
		if ierr, ok := errors.Cause(err).(*errorutils.InternalError); ok {
			s.Error = ierr.PublicDesc
		}
	}
	if e.RepoInfo != nil {
		s.ResultJSON = e.fetchRepoInfo(ctx, out.Reference)
	}
	e.updateState(ctx, sub, out, s)

	props := map[string]interface{}{
		"status":          string(out.Status),
		"durationSeconds": int(time.Since(startedAt) / time.Second),
	}
	if err != nil {
		props["error"] = err.Error()
	}
	analytics.SaveEventProps(ctx, analytics.EventSubmissionEvaluated, props)
	analytics.GetTracker(ctx).Track(ctx, analytics.EventSubmissionEvaluated)
	analytics.TrackSubmissionStatus(string(out.Status))

	return out
}

func (e Evaluator) work(ctx context.Context, sub *mailbox.Submission, out *Outcome) (err error) {
	defer func() {
		if rerr := recover(); rerr != nil {
			out.Status = StatusFailed
			err = &errorutils.InternalError{
				PublicDesc:  "evaluator panicked",
				PrivateDesc: fmt.Sprintf("panic occurred: %s, %s", rerr, debug.Stack()),
			}
		}
	}()

	rep, err := e.Evaluate(ctx, out.Reference)
	if err != nil {
		var eerr *EvaluationError
		if !errors.As(err, &eerr) {
			return err // keep the type for the state description
		}

		analytics.Log(ctx).Warnf("Can't evaluate: %s", eerr)
		if err = e.Reporter.ReportFailure(ctx, sub, report.FailureMessage(out.Reference, eerr.Reason())); err != nil {
			out.Status = StatusReplyFailed
			return err
		}

		out.Status = StatusFailureReplied
		return nil
	}

	text := rep.Render()
	out.Recommendation = rep.Recommendation

	out.ArtifactPath, err = e.Store.Save(ctx, sub.From, text)
	if err != nil {
		return errorutils.NewInternalError("can't save report", err)
	}

	if err = e.Reporter.Report(ctx, sub, text); err != nil {
		out.Status = StatusReplyFailed
		return err
	}

	out.Status = StatusReplied
	return nil
}

func (e Evaluator) fetchRepoInfo(ctx context.Context, ref string) *repoinfo.Info {
	info, err := e.RepoInfo.Fetch(ctx, ref)
	if err != nil {
		analytics.Log(ctx).Warnf("Can't fetch repo info: %s", err)
		return nil
	}

	return info
}

func (e Evaluator) updateState(ctx context.Context, sub *mailbox.Submission, out *Outcome, s *state.State) {
	s.Sender = sub.FromAddress
	s.Reference = out.Reference
	s.Recommendation = string(out.Recommendation)
	s.ArtifactPath = out.ArtifactPath

	if err := e.State.UpdateState(ctx, sub.ID, s); err != nil {
		analytics.Log(ctx).Warnf("Can't set submission %s status to '%s': %s", sub.ID, s.Status, err)
	}
}
