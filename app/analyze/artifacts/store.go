package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/pkg/errors"
)

//go:generate mockgen -package artifacts -source store.go -destination store_mock.go

const timestampLayout = "20060102_150405"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._@+-]`)

// Mirror receives a copy of every saved report.
type Mirror interface {
	Upload(ctx context.Context, localPath, key string) error
}

// Store writes reports into one directory. Reports are never removed by it.
// Two reports of the same sender saved within one second share a name: the
// later one overwrites the earlier.
type Store struct {
	dir    string
	now    func() time.Time
	mirror Mirror
}

func NewStore(dir string, mirror Mirror) *Store {
	return &Store{
		dir:    dir,
		now:    time.Now,
		mirror: mirror,
	}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s Store) Save(ctx context.Context, sender, text string) (string, error) {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "can't create reports dir %s", s.dir)
	}

	name := fmt.Sprintf("%s_%s.md", SanitizeSender(sender), s.now().Format(timestampLayout))
	fpath := filepath.Join(s.dir, name)
	if err := os.WriteFile(fpath, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(err, "can't write report %s", fpath)
	}
	analytics.Log(ctx).Infof("Saved report to %s", fpath)

	if s.mirror != nil {
		if err := s.mirror.Upload(ctx, fpath, name); err != nil {
			analytics.Log(ctx).Warnf("Can't mirror report %s: %s", name, err)
		}
	}

	return fpath, nil
}

// SanitizeSender turns a From header value into a file name part:
// "Jane Doe <jane@example.com>" becomes "jane@example.com".
func SanitizeSender(sender string) string {
	if i := strings.LastIndex(sender, "<"); i != -1 {
		sender = sender[i+1:]
	}
	sender = strings.TrimSpace(strings.ReplaceAll(sender, ">", ""))
	if sender == "" {
		return "unknown"
	}

	return unsafeChars.ReplaceAllString(sender, "_")
}
