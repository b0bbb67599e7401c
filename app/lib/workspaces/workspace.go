package workspaces

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/sirupsen/logrus"
)

// Workspace is a directory owned by exactly one analysis run.
type Workspace struct {
	dir string
}

// Acquire wipes whatever a previous (possibly crashed) run left at dir and
// creates it empty. The caller must Clean the workspace when the run ends.
func Acquire(ctx context.Context, dir string) (*Workspace, error) {
	if dir == "" {
		return nil, errors.New("empty workspace dir")
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, errors.Wrapf(err, "can't remove stale workspace %s", dir)
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "can't create workspace %s", dir)
	}

	logDiskUsage(ctx, filepath.Dir(dir))

	return &Workspace{
		dir: dir,
	}, nil
}

func logDiskUsage(ctx context.Context, path string) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		analytics.Log(ctx).Debugf("Can't get disk usage of %s: %s", path, err)
		return
	}

	analytics.Log(ctx).Debugf("Workspace disk %s: %s free (%.1f%% used)",
		path, humanize.Bytes(usage.Free), usage.UsedPercent)
}

func (w Workspace) Dir() string {
	return w.dir
}

func (w Workspace) Clean() {
	if err := os.RemoveAll(w.dir); err != nil {
		logrus.Warnf("Can't remove workspace %s: %s", w.dir, err)
	}
}
