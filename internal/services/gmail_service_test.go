package services

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/exeai/exeai/internal/logger"
	"google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestGmailService_AuthCodeURL(t *testing.T) {
	svc := NewGmailService("client-id", "client-secret", "http://localhost/callback", nil, logger.NewNop())
	require.True(t, svc.Enabled())

	url, err := svc.AuthCodeURL("state123")
	require.NoError(t, err)
	require.Contains(t, url, "client-id")
	require.Contains(t, url, "state123")
	require.Contains(t, url, "access_type=offline")
}

func TestGmailService_Disabled(t *testing.T) {
	svc := NewGmailService("", "", "", nil, logger.NewNop())
	require.False(t, svc.Enabled())

	_, err := svc.AuthCodeURL("state123")
	require.ErrorIs(t, err, ErrGmailNotConfigured)
}

func TestFlattenMessage(t *testing.T) {
	msg := &gmail.Message{
		Id:       "abc123",
		Snippet:  "Hi there...",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "Subject", Value: "Lunch?"},
				{Name: "Date", Value: "Sun, 30 Aug 2026 10:15:00 +0200"},
			},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/html",
					Body:     &gmail.MessagePartBody{Data: b64("<p>Hi there, lunch today?</p>")},
				},
				{
					MimeType: "text/plain",
					Body:     &gmail.MessagePartBody{Data: b64("Hi there, lunch today?")},
				},
			},
		},
	}

	email := FlattenMessage(msg)

	require.Equal(t, "abc123", email.ID)
	require.Equal(t, "Alice <alice@example.com>", email.From)
	require.Equal(t, "Lunch?", email.Subject)
	require.Equal(t, "Hi there...", email.Snippet)
	require.True(t, email.Unread)

	// text/plain wins over text/html.
	require.Equal(t, "Hi there, lunch today?", email.Body)

	expected := time.Date(2026, 8, 30, 10, 15, 0, 0, time.FixedZone("", 2*60*60))
	require.True(t, email.Date.Equal(expected))
}

func TestFlattenMessage_ReadMessage(t *testing.T) {
	msg := &gmail.Message{
		Id:       "def456",
		LabelIds: []string{"INBOX"},
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: b64("plain body")},
		},
	}

	email := FlattenMessage(msg)
	require.False(t, email.Unread)
	require.Equal(t, "plain body", email.Body)
}

func TestExtractBody_HTMLFallback(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmail.MessagePartBody{Data: b64("<b>html only</b>")},
			},
		},
	}

	require.Equal(t, "<b>html only</b>", extractBody(part))
}

func TestExtractBody_NestedMultipart(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmail.MessagePartBody{Data: b64("nested plain")},
					},
				},
			},
			{
				MimeType: "application/pdf",
				Body:     &gmail.MessagePartBody{Data: b64("%PDF")},
			},
		},
	}

	require.Equal(t, "nested plain", extractBody(part))
}

func TestDecodeBody(t *testing.T) {
	require.Equal(t, "hello", decodeBody(base64.RawURLEncoding.EncodeToString([]byte("hello"))))
	require.Equal(t, "hello", decodeBody(base64.URLEncoding.EncodeToString([]byte("hello"))))
	require.Empty(t, decodeBody("!!! not base64 !!!"))
}

func TestParseMailDate(t *testing.T) {
	parsed := parseMailDate("Mon, 02 Jan 2006 15:04:05 -0700")
	require.False(t, parsed.IsZero())

	parsed = parseMailDate("2 Jan 2006 15:04:05 -0700")
	require.False(t, parsed.IsZero())

	require.True(t, parseMailDate("garbage").IsZero())
}
