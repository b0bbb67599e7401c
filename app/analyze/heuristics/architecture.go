package heuristics

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
	"github.com/pkg/errors"
)

type architectureWalker struct {
	rules Rules

	fileCount int
	languages map[string]bool
	listing   []string
	truncated bool
}

// Architecture walks the whole tree except the VCS dir. A directory's files are
// listed right after it, subdirectories follow. File counting isn't limited,
// the listing is.
func (s Suite) Architecture(dir string) (*result.Architecture, error) {
	w := &architectureWalker{
		rules:     s.Rules,
		languages: map[string]bool{},
	}

	if err := w.walk(dir, filepath.Base(dir), 0); err != nil {
		return nil, err
	}

	var langs []string
	for _, lang := range s.Rules.Languages {
		if w.languages[lang.Name] {
			langs = append(langs, lang.Name)
		}
	}

	return &result.Architecture{
		Languages: langs,
		FileCount: w.fileCount,
		Listing:   w.listing,
		Truncated: w.truncated,
	}, nil
}

func (w *architectureWalker) walk(path, name string, level int) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		if level == 0 {
			return errors.Wrapf(err, "can't read dir %s", path)
		}
		return nil // unreadable subdirs are skipped
	}

	w.emit(level, name+"/")

	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			if e.Name() != w.rules.VCSDir {
				subdirs = append(subdirs, e.Name())
			}
			continue
		}
		// linked dirs aren't walked and aren't files either
		if e.Type()&fs.ModeSymlink != 0 && isDir(filepath.Join(path, e.Name())) {
			continue
		}

		w.fileCount++
		if lang := w.rules.languageOf(e.Name()); lang != "" {
			w.languages[lang] = true
		}
		w.emit(level+1, e.Name())
	}

	for _, sd := range subdirs {
		if err := w.walk(filepath.Join(path, sd), sd, level+1); err != nil {
			return err
		}
	}

	return nil
}

func (w *architectureWalker) emit(level int, entry string) {
	if len(w.listing) >= w.rules.ListingLimit {
		w.truncated = true
		return
	}

	w.listing = append(w.listing, strings.Repeat(w.rules.ListingIndent, level)+entry)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
