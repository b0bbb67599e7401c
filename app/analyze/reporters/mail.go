package reporters

import (
	"context"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/lib/mailbox"
	"github.com/golangci/submission-evaluator/app/lib/mailer"
	"github.com/pkg/errors"
)

const replyPrefix = "Re: "

type MailReporter struct {
	from   string
	sender mailer.Sender
}

var _ Reporter = &MailReporter{}

func NewMailReporter(from string, sender mailer.Sender) *MailReporter {
	return &MailReporter{
		from:   from,
		sender: sender,
	}
}

// replyTo always prefixes the subject: an answer to "Re: x" is "Re: Re: x".
func (r MailReporter) replyTo(sub *mailbox.Submission, body string) *mailer.Envelope {
	return &mailer.Envelope{
		From:       r.from,
		To:         sub.FromAddress,
		Subject:    replyPrefix + sub.Subject,
		Body:       body,
		InReplyTo:  sub.MessageID,
		References: sub.MessageID,
	}
}

func (r MailReporter) Report(ctx context.Context, sub *mailbox.Submission, body string) error {
	e := r.replyTo(sub, body)
	e.CC = sub.CC
	return r.send(ctx, e)
}

func (r MailReporter) ReportFailure(ctx context.Context, sub *mailbox.Submission, body string) error {
	return r.send(ctx, r.replyTo(sub, body))
}

func (r MailReporter) send(ctx context.Context, e *mailer.Envelope) error {
	if err := r.sender.Send(ctx, e); err != nil {
		return errors.Wrapf(err, "can't reply to %s", e.To)
	}

	analytics.Log(ctx).Infof("Replied to %s (cc %v): %s", e.To, e.CC, e.Subject)
	return nil
}
