package bootstrap

import (
	"context"
	"fmt"

	appconfig "github.com/gpucloudstore/gpucloud-site/internal/config"
	"github.com/gpucloudstore/gpucloud-site/internal/notify"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
)

// SESClientFunc builds an SES client on demand so the AWS chain is only
// touched when EMAIL_PROVIDER=ses.
type SESClientFunc func(ctx context.Context) (notify.SESAPI, error)

// BuildSettings resolves the delivery settings from config, applying the
// sender/recipient fallbacks.
func BuildSettings(cfg *appconfig.Config) notify.Settings {
	return notify.Settings{
		Provider: cfg.EmailProvider,
		APIKey:   cfg.SendGridAPIKey,
		From:     cfg.MailFrom(),
		FromName: cfg.SendGridFromName,
		To:       cfg.MailTo(),
	}
}

// BuildDispatcher returns the dispatcher for cfg.EmailProvider. A nil
// dispatcher with a nil error means the provider is not configured; the
// gateway reports that per request instead of failing startup.
func BuildDispatcher(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, sesClient SESClientFunc) (notify.Dispatcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case notify.ProviderSendGrid, "":
		d := notify.NewSendGridDispatcher(notify.SendGridConfig{
			APIKey:  cfg.SendGridAPIKey,
			BaseURL: cfg.SendGridBaseURL,
		}, logger)
		if d == nil {
			logger.Warn("sendgrid api key not set; contact submissions will be refused")
			return nil, nil
		}
		return d, nil
	case notify.ProviderSES:
		if sesClient == nil {
			return nil, fmt.Errorf("bootstrap: ses provider selected without a client factory")
		}
		client, err := sesClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: build ses client: %w", err)
		}
		d := notify.NewSESDispatcher(client, logger)
		if d == nil {
			return nil, nil
		}
		return d, nil
	case notify.ProviderLog:
		logger.Warn("email provider is log; contact submissions will not be delivered")
		return notify.NewLogDispatcher(logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", cfg.EmailProvider)
	}
}

// BuildNotifier wires settings, dispatcher and observer into a notify.Service.
func BuildNotifier(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, observer notify.Observer, sesClient SESClientFunc) (*notify.Service, error) {
	if logger == nil {
		logger = logging.Default()
	}
	dispatcher, err := BuildDispatcher(ctx, cfg, logger, sesClient)
	if err != nil {
		return nil, err
	}
	settings := BuildSettings(cfg)
	if settings.Provider == "" {
		settings.Provider = notify.ProviderSendGrid
	}
	if err := settings.Check(); err != nil {
		logger.Warn("email provider not configured", "error", err)
	}
	return notify.NewService(settings, dispatcher, observer, cfg.ProviderTimeout, logger), nil
}
