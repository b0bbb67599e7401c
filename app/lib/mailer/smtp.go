package mailer

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/jhillyerd/enmime"
	"github.com/pkg/errors"
)

const defaultSMTPPort = "465"

type SMTPSettings struct {
	Host     string // host or host:port, implicit TLS
	User     string
	Password string
}

type SMTP struct {
	settings SMTPSettings
	now      func() time.Time
}

var _ Sender = &SMTP{}

func NewSMTP(s SMTPSettings) *SMTP {
	return &SMTP{
		settings: s,
		now:      time.Now,
	}
}

func (s SMTP) addr() string {
	if _, _, err := net.SplitHostPort(s.settings.Host); err == nil {
		return s.settings.Host
	}
	return net.JoinHostPort(s.settings.Host, defaultSMTPPort)
}

func (s SMTP) Send(ctx context.Context, e *Envelope) error {
	msg, err := buildMessage(e, s.now())
	if err != nil {
		return err
	}

	addr := s.addr()
	c, err := smtp.DialTLS(addr, nil)
	if err != nil {
		return errors.Wrapf(err, "can't connect to smtp server %s", addr)
	}
	defer c.Close()

	if err = c.Auth(sasl.NewPlainClient("", s.settings.User, s.settings.Password)); err != nil {
		return errors.Wrapf(err, "can't authenticate to %s as %s", addr, s.settings.User)
	}

	if err = c.SendMail(e.From, e.Recipients(), bytes.NewReader(msg)); err != nil {
		return errors.Wrapf(err, "can't send mail to %v", e.Recipients())
	}

	if err = c.Quit(); err != nil {
		analytics.Log(ctx).Warnf("Can't quit smtp session: %s", err)
	}

	return nil
}

func buildMessage(e *Envelope, date time.Time) ([]byte, error) {
	b := enmime.Builder().
		From("", e.From).
		To("", e.To).
		Subject(e.Subject).
		Date(date).
		Text([]byte(e.Body))

	for _, cc := range e.CC {
		b = b.CC("", cc)
	}
	if e.InReplyTo != "" {
		b = b.Header("In-Reply-To", e.InReplyTo)
	}
	if e.References != "" {
		b = b.Header("References", e.References)
	}

	root, err := b.Build()
	if err != nil {
		return nil, errors.Wrap(err, "can't build message")
	}

	var buf bytes.Buffer
	if err = root.Encode(&buf); err != nil {
		return nil, errors.Wrap(err, "can't encode message")
	}

	return buf.Bytes(), nil
}
