package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Supported provider identifiers.
const (
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderLog      = "log"
)

// Envelope is the structured email handed to a provider.
type Envelope struct {
	Subject   string
	From      string
	FromName  string
	To        string
	PlainText string
	HTML      string
}

// Dispatcher delivers an envelope through one provider.
// Implementations can be swapped (SendGrid, SES, log) without changing callers.
type Dispatcher interface {
	Dispatch(ctx context.Context, env Envelope) error
}

// SendGridDispatcher sends envelopes via the SendGrid v3 mail/send API.
type SendGridDispatcher struct {
	client sendgrid.Client
	logger *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey string
	// BaseURL overrides https://api.sendgrid.com, mostly for tests.
	BaseURL string
}

// NewSendGridDispatcher creates a SendGrid dispatcher. It returns nil when
// no API key is configured.
func NewSendGridDispatcher(cfg SendGridConfig, logger *logging.Logger) *SendGridDispatcher {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	request := sendgrid.GetRequest(cfg.APIKey, "/v3/mail/send", strings.TrimRight(cfg.BaseURL, "/"))
	request.Method = "POST"
	return &SendGridDispatcher{
		client: sendgrid.Client{Request: request},
		logger: logger,
	}
}

// Dispatch sends the envelope as one personalization with text and HTML parts.
func (s *SendGridDispatcher) Dispatch(ctx context.Context, env Envelope) error {
	if s == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	// The client writes the body into its request on send; work on a copy.
	client := s.client
	response, err := client.SendWithContext(ctx, sendgridMessage(env))
	if response != nil && (response.StatusCode < 200 || response.StatusCode > 299) {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", env.To)
		return &ProviderError{Provider: ProviderSendGrid, StatusCode: response.StatusCode, Detail: response.Body}
	}
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", env.To)
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}

	s.logger.Info("email sent via sendgrid", "to", env.To, "subject", env.Subject, "status", response.StatusCode)
	return nil
}

func sendgridMessage(env Envelope) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(env.FromName, env.From))

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", env.To))
	p.Subject = env.Subject
	message.AddPersonalizations(p)

	message.AddContent(mail.NewContent("text/plain", env.PlainText))
	if env.HTML != "" {
		message.AddContent(mail.NewContent("text/html", env.HTML))
	}
	return message
}

// LogDispatcher is a no-op dispatcher for local development.
type LogDispatcher struct {
	logger *logging.Logger
}

// NewLogDispatcher creates a dispatcher that logs but doesn't send.
func NewLogDispatcher(logger *logging.Logger) *LogDispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogDispatcher{logger: logger}
}

// Dispatch logs the envelope but doesn't actually send it.
func (d *LogDispatcher) Dispatch(ctx context.Context, env Envelope) error {
	d.logger.Info("log dispatcher: would send email", "to", env.To, "subject", env.Subject, "bytes", len(env.PlainText))
	return nil
}

var (
	_ Dispatcher = (*SendGridDispatcher)(nil)
	_ Dispatcher = (*LogDispatcher)(nil)
)
