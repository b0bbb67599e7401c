package heuristics

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
	"github.com/pkg/errors"
)

// AILibraries collects keywords found in any dependency manifest of the tree.
// Hidden directories aren't searched and only regular files are read.
func (s Suite) AILibraries(dir string) (*result.AILibraries, error) {
	found := map[string]bool{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !s.Rules.isDependencyFile(d.Name()) {
			return nil
		}

		text, err := readText(path, s.Rules.MaxFileSize)
		if err != nil {
			return errors.Wrapf(err, "can't read dependency file %s", path)
		}

		lower := strings.ToLower(text)
		for _, kw := range s.Rules.AIKeywords {
			if strings.Contains(lower, kw) {
				found[kw] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't search dependency files")
	}

	var detected []string
	for _, kw := range s.Rules.AIKeywords {
		if found[kw] {
			detected = append(detected, kw)
		}
	}

	return &result.AILibraries{
		Detected: detected,
	}, nil
}
