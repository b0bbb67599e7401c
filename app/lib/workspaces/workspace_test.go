package workspaces

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golangci/submission-evaluator/app/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRemovesStaleContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "workspace")
	test.WriteTree(t, dir, map[string]string{
		"left/over.txt": "from crashed run",
	})

	ws, err := Acquire(context.Background(), dir)
	require.NoError(t, err)
	defer ws.Clean()

	entries, err := os.ReadDir(ws.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanRemovesWorkspace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "workspace")

	ws, err := Acquire(context.Background(), dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	test.WriteTree(t, ws.Dir(), map[string]string{"a/b/c.go": "package c"})
	ws.Clean()

	assert.NoDirExists(t, dir)
}

func TestCleanOnPanic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "workspace")

	func() {
		defer func() {
			assert.NotNil(t, recover())
		}()

		ws, err := Acquire(context.Background(), dir)
		require.NoError(t, err)
		defer ws.Clean()

		panic("analyzer failed")
	}()

	assert.NoDirExists(t, dir)
}

func TestAcquireEmptyDir(t *testing.T) {
	_, err := Acquire(context.Background(), "")
	assert.Error(t, err)
}
