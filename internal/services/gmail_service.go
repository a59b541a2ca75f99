package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/logger"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var (
	ErrGmailNotConfigured = errors.New("gmail integration is not configured")
	ErrGmailNotConnected  = errors.New("gmail account is not connected")
)

// EmailMessage is the uniform shape inbox messages are flattened into.
type EmailMessage struct {
	ID      string    `json:"id"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Snippet string    `json:"snippet"`
	Body    string    `json:"body"`
	Unread  bool      `json:"unread"`
	Date    time.Time `json:"date"`
}

// GmailService talks to the Gmail API on behalf of connected users.
type GmailService struct {
	oauth    *oauth2.Config
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewGmailService creates a new GmailService. An empty clientID disables the
// integration.
func NewGmailService(clientID, clientSecret, redirectURL string, userRepo repository.UserRepository, log *logger.Logger) *GmailService {
	var cfg *oauth2.Config
	if clientID != "" {
		cfg = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gmail.GmailModifyScope},
			Endpoint:     google.Endpoint,
		}
	}

	return &GmailService{
		oauth:    cfg,
		userRepo: userRepo,
		log:      log,
	}
}

// Enabled reports whether OAuth application credentials are configured.
func (s *GmailService) Enabled() bool {
	return s.oauth != nil
}

// AuthCodeURL builds the consent URL carrying the given state token.
func (s *GmailService) AuthCodeURL(state string) (string, error) {
	if !s.Enabled() {
		return "", ErrGmailNotConfigured
	}
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Connect exchanges the authorization code, resolves the mailbox address, and
// persists the tokens on the user row.
func (s *GmailService) Connect(ctx context.Context, user *models.User, code string) error {
	if !s.Enabled() {
		return ErrGmailNotConfigured
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}

	profile, err := svc.Users.GetProfile("me").Do()
	if err != nil {
		return fmt.Errorf("failed to fetch gmail profile: %w", err)
	}

	user.GmailAddress = profile.EmailAddress
	user.GmailAccessToken = token.AccessToken
	user.GmailRefreshToken = token.RefreshToken
	user.GmailTokenExpiry = &token.Expiry

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to persist gmail tokens: %w", err)
	}

	s.log.Infow("gmail connected", "user_id", user.ID, "address", profile.EmailAddress)
	return nil
}

// Disconnect clears the stored tokens.
func (s *GmailService) Disconnect(user *models.User) error {
	user.GmailAddress = ""
	user.GmailAccessToken = ""
	user.GmailRefreshToken = ""
	user.GmailTokenExpiry = nil

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to clear gmail tokens: %w", err)
	}
	return nil
}

// ListMessages fetches the first page of inbox summaries and flattens each
// full message. No caching and no retry; a failed downstream call surfaces as
// an error.
func (s *GmailService) ListMessages(ctx context.Context, user *models.User) ([]EmailMessage, error) {
	svc, err := s.service(ctx, user)
	if err != nil {
		return nil, err
	}

	list, err := svc.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(constants.GmailMaxMessages).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]EmailMessage, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := svc.Users.Messages.Get("me", ref.Id).Format("full").Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
		}
		messages = append(messages, FlattenMessage(full))
	}

	return messages, nil
}

// MarkRead removes the UNREAD label from a message.
func (s *GmailService) MarkRead(ctx context.Context, user *models.User, messageID string) error {
	svc, err := s.service(ctx, user)
	if err != nil {
		return err
	}

	_, err = svc.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

// service builds a Gmail client from the user's stored tokens, refreshing
// them against the stored expiry and persisting any rotation.
func (s *GmailService) service(ctx context.Context, user *models.User) (*gmail.Service, error) {
	if !s.Enabled() {
		return nil, ErrGmailNotConfigured
	}
	if !user.GmailConnected() {
		return nil, ErrGmailNotConnected
	}

	stored := &oauth2.Token{
		AccessToken:  user.GmailAccessToken,
		RefreshToken: user.GmailRefreshToken,
	}
	if user.GmailTokenExpiry != nil {
		stored.Expiry = *user.GmailTokenExpiry
	}

	token, err := s.oauth.TokenSource(ctx, stored).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh gmail token: %w", err)
	}

	if token.AccessToken != user.GmailAccessToken {
		user.GmailAccessToken = token.AccessToken
		user.GmailTokenExpiry = &token.Expiry
		if token.RefreshToken != "" {
			user.GmailRefreshToken = token.RefreshToken
		}
		if err := s.userRepo.Update(user); err != nil {
			s.log.Warnw("failed to persist refreshed gmail token", "user_id", user.ID, "error", err)
		}
	}

	return gmail.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
}

// FlattenMessage reduces a full Gmail message to the uniform inbox shape.
func FlattenMessage(msg *gmail.Message) EmailMessage {
	out := EmailMessage{
		ID:      msg.Id,
		Snippet: msg.Snippet,
	}

	for _, label := range msg.LabelIds {
		if label == "UNREAD" {
			out.Unread = true
			break
		}
	}

	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "From":
				out.From = h.Value
			case "Subject":
				out.Subject = h.Value
			case "Date":
				out.Date = parseMailDate(h.Value)
			}
		}
		out.Body = extractBody(msg.Payload)
	}

	return out
}

// extractBody walks the MIME tree preferring text/plain, falling back to
// text/html, and decodes the base64url payload.
func extractBody(part *gmail.MessagePart) string {
	if part.Body != nil && part.Body.Data != "" && !strings.HasPrefix(part.MimeType, "multipart/") {
		return decodeBody(part.Body.Data)
	}

	var html string
	for _, p := range part.Parts {
		switch p.MimeType {
		case "text/plain":
			if body := extractBody(p); body != "" {
				return body
			}
		case "text/html":
			if html == "" {
				html = extractBody(p)
			}
		default:
			if strings.HasPrefix(p.MimeType, "multipart/") {
				if body := extractBody(p); body != "" {
					return body
				}
			}
		}
	}
	return html
}

func decodeBody(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.URLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}

func parseMailDate(value string) time.Time {
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"2 Jan 2006 15:04:05 -0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
