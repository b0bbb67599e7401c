package heuristics

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
)

// Prompts sums the points of every prompt-like file in the tree and caps the
// total, so many small prompts score like one elaborate prompt.
// Unreadable files and anything but regular files are skipped.
func (s Suite) Prompts(ctx context.Context, dir string) *result.Prompts {
	res := &result.Prompts{}
	total := 0

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != dir && d.Name() == s.Rules.VCSDir {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !s.Rules.isPromptCandidate(d.Name()) {
			return nil
		}

		text, err := readText(path, s.Rules.MaxFileSize)
		if err != nil {
			analytics.Log(ctx).Debugf("Skip unreadable prompt candidate %s: %s", path, err)
			return nil
		}

		points, ok := s.Rules.ratePrompt(text)
		if !ok {
			return nil
		}

		res.Files = append(res.Files, d.Name())
		total += points
		return nil
	})

	res.Score = s.Rules.capScore(total)
	return res
}
