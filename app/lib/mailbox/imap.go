package mailbox

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/pkg/errors"
)

const defaultIMAPPort = "993"

type Settings struct {
	Host     string // host or host:port
	User     string
	Password string
	Folder   string
}

type IMAPDialer struct {
	settings Settings
}

var _ Dialer = IMAPDialer{}

func NewIMAPDialer(s Settings) *IMAPDialer {
	if s.Folder == "" {
		s.Folder = "INBOX"
	}
	return &IMAPDialer{
		settings: s,
	}
}

func withDefaultPort(host, port string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, port)
}

func (d IMAPDialer) Dial(ctx context.Context) (Mailbox, error) {
	addr := withDefaultPort(d.settings.Host, defaultIMAPPort)
	c, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "can't connect to imap server %s", addr)
	}

	if err = c.Login(d.settings.User, d.settings.Password); err != nil {
		_ = c.Logout()
		return nil, errors.Wrapf(err, "can't login to %s as %s", addr, d.settings.User)
	}

	if _, err = c.Select(d.settings.Folder, false); err != nil {
		_ = c.Logout()
		return nil, errors.Wrapf(err, "can't select mailbox %s", d.settings.Folder)
	}

	analytics.Log(ctx).Infof("Connected to imap server %s as %s", addr, d.settings.User)
	return &imapMailbox{c: c}, nil
}

type imapMailbox struct {
	c *client.Client
}

func (m imapMailbox) Search(_ context.Context, marker string) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	criteria.Header.Add("Subject", marker)

	ids, err := m.c.UidSearch(criteria)
	if err != nil {
		return nil, errors.Wrap(err, "can't search messages")
	}

	return ids, nil
}

func (m imapMailbox) Fetch(_ context.Context, id uint32) ([]byte, error) {
	seqSet := new(imap.SeqSet)
	seqSet.AddNum(id)

	// BODY[] instead of BODY.PEEK[]: fetching marks the message as seen
	section := &imap.BodySectionName{}
	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- m.c.UidFetch(seqSet, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var raw []byte
	var readErr error
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil || raw != nil {
			continue
		}
		raw, readErr = io.ReadAll(body)
	}

	if err := <-done; err != nil {
		return nil, errors.Wrapf(err, "can't fetch message %d", id)
	}
	if readErr != nil {
		return nil, errors.Wrapf(readErr, "can't read message %d", id)
	}
	if raw == nil {
		return nil, fmt.Errorf("no message with id %d", id)
	}

	return raw, nil
}

func (m imapMailbox) Close() error {
	if err := m.c.Close(); err != nil {
		_ = m.c.Logout()
		return errors.Wrap(err, "can't close mailbox")
	}

	return m.c.Logout()
}
