package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultFromAddress is used when neither SENDGRID_FROM nor SENDGRID_TO is set.
const DefaultFromAddress = "no-reply@example.com"

// Config holds application configuration
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	Env       string `env:"ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// EmailProvider selects the delivery backend: "sendgrid" or "ses".
	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"sendgrid"`

	// SendGrid Email Configuration
	SendGridAPIKey   string `env:"SENDGRID_API_KEY"`
	SendGridFrom     string `env:"SENDGRID_FROM"`
	SendGridTo       string `env:"SENDGRID_TO"`
	SendGridFromName string `env:"SENDGRID_FROM_NAME"`
	SendGridBaseURL  string `env:"SENDGRID_BASE_URL"`

	BrandLabel      string        `env:"BRAND_LABEL" envDefault:"GPUcloud.store"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	AWSRegion           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID      string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSEndpointOverride string `env:"AWS_ENDPOINT_OVERRIDE"`

	CORSAllowedOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ContactRateLimitRPS   float64  `env:"CONTACT_RATE_LIMIT_RPS" envDefault:"1"`
	ContactRateLimitBurst int      `env:"CONTACT_RATE_LIMIT_BURST" envDefault:"5"`
	MetricsEnabled        bool     `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load reads configuration from environment variables. A .env file (or
// .env.<ENV>) in the working directory is loaded first when present; values
// already in the environment win.
func Load() (*Config, error) {
	candidates := []string{".env"}
	if name := strings.TrimSpace(os.Getenv("ENV")); name != "" {
		candidates = append([]string{".env." + name}, candidates...)
	}
	for _, path := range candidates {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.EmailProvider = strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	return cfg, nil
}

// MailFrom returns the sender address, falling back to the recipient and
// then to DefaultFromAddress.
func (c *Config) MailFrom() string {
	if from := strings.TrimSpace(c.SendGridFrom); from != "" {
		return from
	}
	if to := strings.TrimSpace(c.SendGridTo); to != "" {
		return to
	}
	return DefaultFromAddress
}

// MailTo returns the recipient address, falling back to the sender. An
// empty result means no recipient is configured.
func (c *Config) MailTo() string {
	if to := strings.TrimSpace(c.SendGridTo); to != "" {
		return to
	}
	return strings.TrimSpace(c.SendGridFrom)
}
