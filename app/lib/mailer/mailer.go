package mailer

import "context"

//go:generate mockgen -package mailer -source mailer.go -destination mailer_mock.go

const (
	TransportSMTP     = "smtp"
	TransportSendGrid = "sendgrid"
)

// Envelope is one outgoing plain-text message.
type Envelope struct {
	From    string
	To      string
	CC      []string
	Subject string
	Body    string

	InReplyTo  string
	References string
}

func (e Envelope) Recipients() []string {
	return append([]string{e.To}, e.CC...)
}

type Sender interface {
	Send(ctx context.Context, e *Envelope) error
}
