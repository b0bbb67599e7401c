package heuristics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
	"github.com/golangci/submission-evaluator/app/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readmeOf(t *testing.T, files map[string]string) *result.Readme {
	dir := t.TempDir()
	test.WriteTree(t, dir, files)

	res, err := NewSuite(DefaultRules).Readme(dir)
	require.NoError(t, err)
	return res
}

func TestReadmeMissing(t *testing.T) {
	res := readmeOf(t, map[string]string{"main.go": "package main"})
	assert.Equal(t, &result.Readme{Status: result.ReadmeMissing, Score: 0}, res)
}

func TestReadmeScoreByLength(t *testing.T) {
	cases := []struct {
		chars, score int
	}{
		{0, 0},
		{499, 0},
		{500, 1},
		{1999, 3},
		{2499, 4},
		{2500, 5},
		{100000, 5},
	}

	for _, c := range cases {
		res := readmeOf(t, map[string]string{"README.md": strings.Repeat("a", c.chars)})
		assert.Equal(t, result.ReadmePresent, res.Status)
		assert.Equal(t, c.score, res.Score, "chars: %d", c.chars)
	}
}

func TestReadmeScoreIsMonotonic(t *testing.T) {
	rules := DefaultRules
	prev := 0
	for chars := 0; chars <= 4000; chars += 37 {
		score := rules.readmeScore(chars)
		assert.True(t, score >= prev)
		assert.True(t, score <= rules.MaxScore)
		prev = score
	}
}

func TestReadmeCountsCharsNotBytes(t *testing.T) {
	res := readmeOf(t, map[string]string{"README.md": strings.Repeat("é", 1000)})
	assert.Equal(t, 2, res.Score)
}

func TestReadmeCaseInsensitive(t *testing.T) {
	res := readmeOf(t, map[string]string{"readme.rst": strings.Repeat("a", 1500)})
	assert.Equal(t, result.ReadmePresent, res.Status)
	assert.Equal(t, 3, res.Score)
}

func TestReadmeOnlyFirstIsUsed(t *testing.T) {
	res := readmeOf(t, map[string]string{
		"README.md":  strings.Repeat("a", 600),
		"readme.txt": strings.Repeat("a", 5000),
	})
	assert.Equal(t, 1, res.Score)
}

func TestReadmeNotRecursive(t *testing.T) {
	res := readmeOf(t, map[string]string{"docs/README.md": strings.Repeat("a", 5000)})
	assert.Equal(t, result.ReadmeMissing, res.Status)
}

func TestReadmeSkipsDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "README_assets"), os.ModePerm))
	test.WriteTree(t, dir, map[string]string{"readme.md": strings.Repeat("a", 1000)})

	res, err := NewSuite(DefaultRules).Readme(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
}

func TestReadmeIgnoresSymlinks(t *testing.T) {
	dir := t.TempDir()
	linkOutside(t, dir, "README.md", strings.Repeat("a", 3000))

	res, err := NewSuite(DefaultRules).Readme(dir)
	require.NoError(t, err)
	assert.Equal(t, result.ReadmeMissing, res.Status)
	assert.Equal(t, 0, res.Score)

	test.WriteTree(t, dir, map[string]string{"readme.txt": strings.Repeat("a", 1000)})
	res, err = NewSuite(DefaultRules).Readme(dir)
	require.NoError(t, err)
	assert.Equal(t, result.ReadmePresent, res.Status)
	assert.Equal(t, 2, res.Score)
}

func TestReadmeLengthIsCappedByMaxFileSize(t *testing.T) {
	dir := t.TempDir()
	test.WriteTree(t, dir, map[string]string{"README.md": strings.Repeat("a", 5000)})

	rules := DefaultRules
	rules.MaxFileSize = 600
	res, err := NewSuite(rules).Readme(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
}
