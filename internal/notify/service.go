package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
)

// Settings is the resolved delivery configuration.
type Settings struct {
	Provider string
	APIKey   string
	From     string
	FromName string
	To       string
}

// Check returns a *ConfigurationError when the provider cannot deliver:
// SendGrid needs an API key and every provider needs a recipient.
func (s Settings) Check() error {
	var missing []string
	if s.Provider == ProviderSendGrid && strings.TrimSpace(s.APIKey) == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}
	if strings.TrimSpace(s.To) == "" {
		missing = append(missing, "SENDGRID_TO")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Provider: s.Provider, Missing: missing}
	}
	return nil
}

// Observer receives delivery outcomes; metrics.ContactMetrics satisfies it.
type Observer interface {
	ObserveDispatch(provider, status string, seconds float64)
}

// Service checks settings and hands envelopes to the configured dispatcher.
// Each call is a single attempt; nothing is retried or deduplicated.
type Service struct {
	settings   Settings
	dispatcher Dispatcher
	observer   Observer
	timeout    time.Duration
	logger     *logging.Logger
}

// NewService creates a notification service. A zero timeout leaves the
// caller's context deadline in charge.
func NewService(settings Settings, dispatcher Dispatcher, observer Observer, timeout time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		settings:   settings,
		dispatcher: dispatcher,
		observer:   observer,
		timeout:    timeout,
		logger:     logger,
	}
}

// Settings returns the resolved delivery settings.
func (s *Service) Settings() Settings {
	return s.settings
}

// Deliver sends env through the dispatcher. Configuration problems are
// reported before any network call.
func (s *Service) Deliver(ctx context.Context, env Envelope) error {
	if err := s.settings.Check(); err != nil {
		return err
	}
	if s.dispatcher == nil {
		return &ConfigurationError{Provider: s.settings.Provider, Missing: []string{"dispatcher"}}
	}
	if env.To == "" {
		env.To = s.settings.To
	}
	if env.From == "" {
		env.From = s.settings.From
	}
	if env.FromName == "" {
		env.FromName = s.settings.FromName
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := s.dispatcher.Dispatch(ctx, env)
	s.observe(err, time.Since(start))
	if err != nil {
		return fmt.Errorf("notify: deliver: %w", err)
	}
	return nil
}

func (s *Service) observe(err error, elapsed time.Duration) {
	if s.observer == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
		if _, ok := AsProviderError(err); ok {
			status = "rejected"
		}
	}
	s.observer.ObserveDispatch(s.settings.Provider, status, elapsed.Seconds())
}
