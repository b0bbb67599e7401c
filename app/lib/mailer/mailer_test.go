package mailer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvelope = &Envelope{
	From:       "evaluator@example.com",
	To:         "jane@example.com",
	CC:         []string{"bob@example.com", "carol@example.com"},
	Subject:    "Re: Project Submission",
	Body:       "# Project Evaluation Report for https://github.com/jane/bot",
	InReplyTo:  "<abc@example.com>",
	References: "<abc@example.com>",
}

func TestRecipients(t *testing.T) {
	assert.Equal(t, []string{"jane@example.com", "bob@example.com", "carol@example.com"}, testEnvelope.Recipients())
	assert.Equal(t, []string{"jane@example.com"}, (&Envelope{To: "jane@example.com"}).Recipients())
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage(testEnvelope, time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC))
	require.NoError(t, err)

	env, err := enmime.ReadEnvelope(bytes.NewReader(msg))
	require.NoError(t, err)

	assert.Equal(t, "Re: Project Submission", env.GetHeader("Subject"))
	assert.Contains(t, env.GetHeader("From"), "evaluator@example.com")
	assert.Contains(t, env.GetHeader("To"), "jane@example.com")
	assert.Contains(t, env.GetHeader("Cc"), "bob@example.com")
	assert.Contains(t, env.GetHeader("Cc"), "carol@example.com")
	assert.Equal(t, "<abc@example.com>", env.GetHeader("In-Reply-To"))
	assert.Equal(t, "<abc@example.com>", env.GetHeader("References"))
	assert.Equal(t, testEnvelope.Body, strings.TrimSpace(env.Text))
}

func TestBuildMessageWithoutCC(t *testing.T) {
	e := &Envelope{
		From:    "evaluator@example.com",
		To:      "jane@example.com",
		Subject: "Re: Project Submission",
		Body:    "Failed to evaluate repository",
	}
	msg, err := buildMessage(e, time.Now())
	require.NoError(t, err)

	env, err := enmime.ReadEnvelope(bytes.NewReader(msg))
	require.NoError(t, err)
	assert.Empty(t, env.GetHeader("Cc"))
	assert.Empty(t, env.GetHeader("In-Reply-To"))
}

func TestBuildV3Mail(t *testing.T) {
	m := buildV3Mail(testEnvelope)

	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	require.Len(t, p.To, 1)
	assert.Equal(t, "jane@example.com", p.To[0].Address)
	require.Len(t, p.CC, 2)
	assert.Equal(t, "bob@example.com", p.CC[0].Address)
	assert.Equal(t, "Re: Project Submission", m.Subject)
	assert.Equal(t, "<abc@example.com>", m.Headers["In-Reply-To"])
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
}

func TestSMTPAddr(t *testing.T) {
	assert.Equal(t, "smtp.example.com:465", NewSMTP(SMTPSettings{Host: "smtp.example.com"}).addr())
	assert.Equal(t, "smtp.example.com:2465", NewSMTP(SMTPSettings{Host: "smtp.example.com:2465"}).addr())
}
