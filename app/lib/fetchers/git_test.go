package fetchers

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/golangci/submission-evaluator/app/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLocalRepo(t *testing.T) string {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	test.WriteTree(t, dir, map[string]string{
		"README.md": "# test\n",
		"main.go":   "package main\n",
	})

	wt, err := repo.Worktree()
	require.NoError(t, err)
	for _, f := range []string{"README.md", "main.go"} {
		_, err = wt.Add(f)
		require.NoError(t, err)
	}

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func makeDestDir(t *testing.T) string {
	dest := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, os.Mkdir(dest, os.ModePerm))
	return dest
}

func requireGitBinary(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("no git binary")
	}
}

func TestGitOnLocalRepo(t *testing.T) {
	requireGitBinary(t)

	src := makeLocalRepo(t)
	dest := makeDestDir(t)

	err := NewGit().Fetch(context.Background(), "file://"+src, dest)
	require.NoError(t, err)

	files, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, ".git", files[0].Name())
	assert.Equal(t, "README.md", files[1].Name())
	assert.Equal(t, "main.go", files[2].Name())
}

func TestGitOnMissingRepo(t *testing.T) {
	requireGitBinary(t)

	missing := filepath.Join(t.TempDir(), "missing")
	dest := makeDestDir(t)
	err := NewGit().Fetch(context.Background(), "file://"+missing, dest)
	require.Error(t, err)

	var cerr *CloneError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "file://"+missing, cerr.URL)
	assert.NotContains(t, err.Error(), dest)
	assert.NotContains(t, err.Error(), "clone -q")
}

func TestCloneErrorHidesLocalPaths(t *testing.T) {
	dest := "/tmp/submission-evaluator/repo"
	out := "Cloning into '/tmp/submission-evaluator/repo'...\n" +
		"fatal: repository 'https://github.com/jane/missing/' not found\n"

	err := newCloneError("https://github.com/jane/missing", gitFailureReason(out), dest)
	assert.EqualError(t, err,
		"can't clone https://github.com/jane/missing: repository 'https://github.com/jane/missing/' not found")

	out = "fatal: could not create work tree dir '/tmp/submission-evaluator/repo': Permission denied\n"
	err = newCloneError("https://github.com/jane/bot", gitFailureReason(out), dest)
	assert.EqualError(t, err, "can't clone https://github.com/jane/bot")

	err = newCloneError("https://github.com/jane/bot", "", dest)
	assert.EqualError(t, err, "can't clone https://github.com/jane/bot")
}

func TestGoGitOnMissingRepo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	dest := makeDestDir(t)
	err := NewGoGit().Fetch(context.Background(), missing, dest)
	require.Error(t, err)

	var cerr *CloneError
	assert.True(t, errors.As(err, &cerr))
	assert.NotContains(t, err.Error(), dest)
}

func TestGoGitOnGithubRepo(t *testing.T) {
	test.MarkAsSlow(t)

	dest := makeDestDir(t)
	err := NewGoGit().Fetch(context.Background(), "https://github.com/golangci/golangci-worker", dest)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dest, ".git"))
}

func TestNewBackend(t *testing.T) {
	f, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Git{}, f)

	f, err = New(BackendGoGit)
	require.NoError(t, err)
	assert.IsType(t, &GoGit{}, f)

	_, err = New("svn")
	assert.Error(t, err)
}
