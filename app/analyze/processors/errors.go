package processors

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Stage string

const (
	StageSnapshot Stage = "snapshot"
	StageAnalysis Stage = "analysis"
)

// EvaluationError means the repository itself couldn't be evaluated. The
// submitter is told about it, unlike about internal errors.
type EvaluationError struct {
	Stage     Stage
	Reference string
	Err       error

	workspace string
}

func (e EvaluationError) Error() string {
	return fmt.Sprintf("%s of %s failed: %s", e.Stage, e.Reference, e.Err)
}

func (e EvaluationError) Unwrap() error {
	return e.Err
}

// Reason describes Err for the submitter, without the local workspace path.
func (e EvaluationError) Reason() string {
	msg := e.Err.Error()
	if e.workspace == "" {
		return msg
	}

	msg = strings.ReplaceAll(msg, e.workspace+string(filepath.Separator), "")
	return strings.ReplaceAll(msg, e.workspace, ".")
}
