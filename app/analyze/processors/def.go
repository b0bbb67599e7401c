package processors

type Status string

const (
	StatusReplied        Status = "replied"
	StatusFailureReplied Status = "failure_replied"
	StatusNoReference    Status = "no_reference"
	StatusReplyFailed    Status = "reply_failed"
	StatusFailed         Status = "failed"
)

const internalError = "Internal error"
