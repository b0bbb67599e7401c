package executors

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Shell runs commands on the local host. Command output is captured and
// returned to the caller, it's never streamed into the logs.
type Shell struct {
	envStore
	wd string
}

var _ Executor = Shell{}

func NewShell(workDir string) *Shell {
	return &Shell{
		wd:       workDir,
		envStore: *newEnvStore(),
	}
}

func quoteArgs(args []string) []string {
	var ret []string
	for _, arg := range args {
		ret = append(ret, strconv.Quote(arg))
	}
	return ret
}

func sprintArgs(args []string) string {
	return strings.Join(quoteArgs(args), " ")
}

func (s Shell) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = s.env
	cmd.Dir = s.wd

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	startedAt := time.Now()
	err := cmd.Run()
	logrus.Debugf("shell[%s]: %s %s executed for %s: %v", s.wd, name, sprintArgs(args), time.Since(startedAt), err)
	if err != nil {
		// XXX: it's important to keep the original error: it holds exit code
		return out.String(), fmt.Errorf("can't execute command %s %s: %w", name, sprintArgs(args), err)
	}

	return out.String(), nil
}

func (s Shell) WithEnv(k, v string) Executor {
	sCopy := s
	sCopy.SetEnv(k, v)
	return sCopy
}
