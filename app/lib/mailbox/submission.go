package mailbox

import (
	"bytes"
	"net/mail"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/pkg/errors"
)

// Submission is one inbound message. It is never modified after Parse.
type Submission struct {
	ID        string // mailbox identifier
	MessageID string

	From        string // raw header value
	FromAddress string
	Subject     string
	Body        string // first text/plain part
	CC          []string
}

func Parse(id string, raw []byte) (*Submission, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "can't parse MIME message")
	}

	from := env.GetHeader("From")
	s := &Submission{
		ID:          id,
		MessageID:   env.GetHeader("Message-ID"),
		From:        from,
		FromAddress: from,
		Subject:     env.GetHeader("Subject"),
		Body:        env.Text,
		CC:          parseAddresses(env, "Cc"),
	}

	if addrs := parseAddresses(env, "From"); len(addrs) != 0 {
		s.FromAddress = addrs[0]
	}

	return s, nil
}

// parseAddresses returns bare addresses of the header. A malformed entry
// doesn't drop the well-formed ones.
func parseAddresses(env *enmime.Envelope, header string) []string {
	if list, err := env.AddressList(header); err == nil {
		var ret []string
		for _, a := range list {
			if a.Address != "" {
				ret = append(ret, a.Address)
			}
		}
		return ret
	}

	var ret []string
	for _, part := range strings.Split(env.GetHeader(header), ",") {
		a, err := mail.ParseAddress(strings.TrimSpace(part))
		if err != nil || a.Address == "" {
			continue
		}
		ret = append(ret, a.Address)
	}
	return ret
}
