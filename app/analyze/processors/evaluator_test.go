package processors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/golangci/submission-evaluator/app/analyze/artifacts"
	"github.com/golangci/submission-evaluator/app/analyze/heuristics"
	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
	"github.com/golangci/submission-evaluator/app/analyze/report"
	"github.com/golangci/submission-evaluator/app/analyze/reporters"
	"github.com/golangci/submission-evaluator/app/analyze/repoinfo"
	"github.com/golangci/submission-evaluator/app/analyze/state"
	"github.com/golangci/submission-evaluator/app/lib/errorutils"
	"github.com/golangci/submission-evaluator/app/lib/fetchers"
	"github.com/golangci/submission-evaluator/app/lib/mailbox"
	"github.com/golangci/submission-evaluator/app/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var any = gomock.Any()

const testRef = "https://github.com/jane/bot"

var testSubmission = &mailbox.Submission{
	ID:          "42",
	MessageID:   "<abc@example.com>",
	From:        "Jane <jane@example.com>",
	FromAddress: "jane@example.com",
	Subject:     "Project Submission",
	Body:        "Hi! My project: " + testRef + " and a fork https://github.com/jane/other",
	CC:          []string{"bob@example.com"},
}

var testRepo = map[string]string{
	"README.md":        strings.Repeat("docs ", 400),
	"app.py":           "import openai",
	"requirements.txt": "openai\n",
}

type testEnv struct {
	workspaceDir string
	reportsDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	root := t.TempDir()
	return &testEnv{
		workspaceDir: filepath.Join(root, "workspace", "repo"),
		reportsDir:   filepath.Join(root, "docs", "hackathon"),
	}
}

func (te testEnv) evaluator(deps Deps) *Evaluator {
	if deps.Store == nil {
		deps.Store = artifacts.NewStore(te.reportsDir, nil)
	}
	return NewEvaluator(te.workspaceDir, deps)
}

func (te testEnv) assertCleanedUp(t *testing.T) {
	_, err := os.Stat(te.workspaceDir)
	assert.True(t, os.IsNotExist(err), "workspace must be removed, stat err: %v", err)
}

func (te testEnv) reports(t *testing.T) []string {
	entries, err := os.ReadDir(te.reportsDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var ret []string
	for _, e := range entries {
		ret = append(ret, e.Name())
	}
	return ret
}

func getFakeFetcher(t *testing.T, ctrl *gomock.Controller, files map[string]string) fetchers.Fetcher {
	f := fetchers.NewMockFetcher(ctrl)
	f.EXPECT().Fetch(any, testRef, any).DoAndReturn(func(_ context.Context, _, destDir string) error {
		test.WriteTree(t, destDir, files)
		return nil
	})
	return f
}

func getErroredFetcher(ctrl *gomock.Controller) fetchers.Fetcher {
	f := fetchers.NewMockFetcher(ctrl)
	f.EXPECT().Fetch(any, testRef, any).Return(errors.New("repository not found"))
	return f
}

func TestProcessReplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	var replied string
	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().Report(any, testSubmission, any).DoAndReturn(func(_ context.Context, _ *mailbox.Submission, body string) error {
		replied = body
		return nil
	})

	st := state.NewMockStorage(ctrl)
	processing := st.EXPECT().UpdateState(any, "42", &state.State{
		Status:    state.StatusProcessing,
		Sender:    "jane@example.com",
		Reference: testRef,
	}).Return(nil)
	st.EXPECT().UpdateState(any, "42", any).DoAndReturn(func(_ context.Context, _ string, s *state.State) error {
		assert.Equal(t, string(StatusReplied), s.Status)
		assert.Equal(t, "APPROVED", s.Recommendation)
		assert.Empty(t, s.Error)
		return errors.New("state api is down") // only logged
	}).After(processing)

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Reporter: r,
		State:    st,
	}).Process(context.Background(), testSubmission)

	require.NoError(t, out.Err)
	assert.Equal(t, StatusReplied, out.Status)
	assert.Equal(t, testRef, out.Reference)
	assert.Equal(t, report.RecommendationApproved, out.Recommendation)
	assert.True(t, strings.HasPrefix(replied, "# Project Evaluation Report for "+testRef))

	require.Equal(t, []string{filepath.Base(out.ArtifactPath)}, te.reports(t))
	assert.Regexp(t, `^jane@example\.com_\d{8}_\d{6}\.md$`, filepath.Base(out.ArtifactPath))
	content, err := os.ReadFile(out.ArtifactPath)
	require.NoError(t, err)
	assert.Equal(t, replied, string(content))

	te.assertCleanedUp(t)
}

func TestProcessUnreachableRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().ReportFailure(any, testSubmission,
		"Failed to evaluate repository https://github.com/jane/bot. Error: repository not found").
		Return(nil)

	out := te.evaluator(Deps{
		Fetcher:  getErroredFetcher(ctrl),
		Reporter: r,
	}).Process(context.Background(), testSubmission)

	assert.NoError(t, out.Err)
	assert.Equal(t, StatusFailureReplied, out.Status)
	assert.Empty(t, out.ArtifactPath)
	assert.Empty(t, te.reports(t))
	te.assertCleanedUp(t)
}

func TestProcessNoReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	sub := *testSubmission
	sub.Body = "I forgot the link, sorry"

	// no calls expected on any collaborator
	out := te.evaluator(Deps{
		Fetcher:  fetchers.NewMockFetcher(ctrl),
		Reporter: reporters.NewMockReporter(ctrl),
		State:    state.NewMockStorage(ctrl),
	}).Process(context.Background(), &sub)

	assert.Equal(t, StatusNoReference, out.Status)
	assert.Empty(t, out.Reference)
	assert.NoError(t, out.Err)
}

type panickingRunner struct{}

func (panickingRunner) Run(context.Context, string) (*result.Result, error) {
	panic("index out of range")
}

type erroredRunner struct{}

func (erroredRunner) Run(context.Context, string) (*result.Result, error) {
	return nil, errors.New("can't read dir")
}

func TestProcessAnalyzerPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	st := state.NewMockStorage(ctrl)
	st.EXPECT().UpdateState(any, "42", any).Return(nil)
	st.EXPECT().UpdateState(any, "42", any).DoAndReturn(func(_ context.Context, _ string, s *state.State) error {
		assert.Equal(t, string(StatusFailed), s.Status)
		assert.Equal(t, "evaluator panicked", s.Error)
		return nil
	})

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Runner:   panickingRunner{},
		Reporter: reporters.NewMockReporter(ctrl),
		State:    st,
	}).Process(context.Background(), testSubmission)

	assert.Equal(t, StatusFailed, out.Status)
	require.Error(t, out.Err)
	_, ok := out.Err.(*errorutils.InternalError)
	assert.True(t, ok)
	assert.Contains(t, out.Err.Error(), "index out of range")
	assert.Empty(t, te.reports(t))
	te.assertCleanedUp(t)
}

func TestProcessAnalysisErrorIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().ReportFailure(any, testSubmission,
		"Failed to evaluate repository https://github.com/jane/bot. Error: can't read dir").
		Return(nil)

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Runner:   erroredRunner{},
		Reporter: r,
	}).Process(context.Background(), testSubmission)

	assert.Equal(t, StatusFailureReplied, out.Status)
	te.assertCleanedUp(t)
}

type pathErrorRunner struct{}

func (pathErrorRunner) Run(_ context.Context, dir string) (*result.Result, error) {
	return nil, fmt.Errorf("can't read dependency file %s", filepath.Join(dir, "web", "package.json"))
}

func TestProcessFailureReplyHidesWorkspace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().ReportFailure(any, testSubmission,
		"Failed to evaluate repository https://github.com/jane/bot. Error: can't read dependency file web/package.json").
		Return(nil)

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Runner:   pathErrorRunner{},
		Reporter: r,
	}).Process(context.Background(), testSubmission)

	assert.Equal(t, StatusFailureReplied, out.Status)
	te.assertCleanedUp(t)
}

func TestProcessReplyFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().Report(any, any, any).Return(errors.New("smtp is down"))

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Reporter: r,
	}).Process(context.Background(), testSubmission)

	assert.Equal(t, StatusReplyFailed, out.Status)
	assert.EqualError(t, out.Err, "smtp is down")
	assert.Len(t, te.reports(t), 1, "report is persisted before replying")
	te.assertCleanedUp(t)
}

func TestProcessFailureReplyFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().ReportFailure(any, any, any).Return(errors.New("smtp is down"))

	out := te.evaluator(Deps{
		Fetcher:  getErroredFetcher(ctrl),
		Reporter: r,
	}).Process(context.Background(), testSubmission)

	assert.Equal(t, StatusReplyFailed, out.Status)
	assert.Error(t, out.Err)
}

func TestProcessStaleWorkspaceIsReplaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	test.WriteTree(t, te.workspaceDir, map[string]string{"leftover/requirements.txt": "langchain"})

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().Report(any, any, any).DoAndReturn(func(_ context.Context, _ *mailbox.Submission, body string) error {
		assert.NotContains(t, body, "langchain")
		return nil
	})

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Reporter: r,
	}).Process(context.Background(), testSubmission)

	assert.Equal(t, StatusReplied, out.Status)
	te.assertCleanedUp(t)
}

func TestProcessRepoInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	r := reporters.NewMockReporter(ctrl)
	r.EXPECT().Report(any, any, any).Return(nil)

	info := &repoinfo.Info{FullName: "jane/bot", Stars: 10}
	ri := repoinfo.NewMockFetcher(ctrl)
	ri.EXPECT().Fetch(any, testRef).Return(info, nil)

	st := state.NewMockStorage(ctrl)
	st.EXPECT().UpdateState(any, any, any).Return(nil)
	st.EXPECT().UpdateState(any, any, any).DoAndReturn(func(_ context.Context, _ string, s *state.State) error {
		assert.Equal(t, info, s.ResultJSON)
		return nil
	})

	out := te.evaluator(Deps{
		Fetcher:  getFakeFetcher(t, ctrl, testRepo),
		Reporter: r,
		State:    st,
		RepoInfo: ri,
	}).Process(context.Background(), testSubmission)
	assert.Equal(t, StatusReplied, out.Status)
}

func TestEvaluate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	rep, err := te.evaluator(Deps{
		Fetcher: getFakeFetcher(t, ctrl, map[string]string{"main.rs": "fn main() {}"}),
		Runner:  heuristics.NewSuite(heuristics.DefaultRules),
	}).Evaluate(context.Background(), testRef)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rust"}, rep.Result.Architecture.Languages)
	assert.Equal(t, report.RecommendationNeedsImprovement, rep.Recommendation)
	te.assertCleanedUp(t)
}

func TestEvaluateSnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	te := newTestEnv(t)

	_, err := te.evaluator(Deps{Fetcher: getErroredFetcher(ctrl)}).Evaluate(context.Background(), testRef)
	require.Error(t, err)

	eerr, ok := err.(*EvaluationError)
	require.True(t, ok)
	assert.Equal(t, StageSnapshot, eerr.Stage)
	assert.EqualError(t, err, "snapshot of https://github.com/jane/bot failed: repository not found")
	te.assertCleanedUp(t)
}
