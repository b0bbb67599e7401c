package mailer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGrid struct {
	client *sendgrid.Client
}

var _ Sender = &SendGrid{}

func NewSendGrid(apiKey string) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
	}
}

func buildV3Mail(e *Envelope) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail("", e.From))
	m.Subject = e.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", e.To))
	for _, cc := range e.CC {
		p.AddCCs(mail.NewEmail("", cc))
	}
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/plain", e.Body))

	if e.InReplyTo != "" {
		m.SetHeader("In-Reply-To", e.InReplyTo)
	}
	if e.References != "" {
		m.SetHeader("References", e.References)
	}

	return m
}

func (s SendGrid) Send(ctx context.Context, e *Envelope) error {
	resp, err := s.client.SendWithContext(ctx, buildV3Mail(e))
	if err != nil {
		return errors.Wrapf(err, "can't send mail to %v via sendgrid", e.Recipients())
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
