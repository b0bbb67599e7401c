package heuristics

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
	"github.com/pkg/errors"
)

// Readme rates the first top-level README by its length. Other README
// variants are ignored.
func (s Suite) Readme(dir string) (*result.Readme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read dir %s", dir)
	}

	for _, e := range entries {
		// symlinks may point out of the repository
		if !e.Type().IsRegular() || !s.Rules.isReadme(e.Name()) {
			continue
		}

		fpath := filepath.Join(dir, e.Name())
		text, err := readText(fpath, s.Rules.MaxFileSize)
		if err != nil {
			return nil, errors.Wrapf(err, "can't read readme %s", fpath)
		}

		return &result.Readme{
			Status: result.ReadmePresent,
			Score:  s.Rules.readmeScore(utf8.RuneCountInString(text)),
		}, nil
	}

	return &result.Readme{
		Status: result.ReadmeMissing,
		Score:  0,
	}, nil
}
