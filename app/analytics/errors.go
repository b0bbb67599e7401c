package analytics

import (
	"context"
)

const (
	levelWarn  = "WARN"
	levelError = "ERROR"
)

func trackError(_ context.Context, _ error, level string) {
	errorsTotal.WithLabelValues(level).Inc()
}
