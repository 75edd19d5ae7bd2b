package config

import (
	"os"
	"testing"
	"time"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "EMAIL_PROVIDER", "SENDGRID_API_KEY",
		"SENDGRID_FROM", "SENDGRID_TO", "BRAND_LABEL", "PROVIDER_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"CONTACT_RATE_LIMIT_RPS", "CONTACT_RATE_LIMIT_BURST", "METRICS_ENABLED")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected sendgrid provider by default, got %s", cfg.EmailProvider)
	}
	if cfg.BrandLabel != "GPUcloud.store" {
		t.Fatalf("expected default brand label, got %s", cfg.BrandLabel)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Fatalf("expected 10s provider timeout, got %s", cfg.ProviderTimeout)
	}
	if cfg.ContactRateLimitRPS != 1 || cfg.ContactRateLimitBurst != 5 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.ContactRateLimitRPS, cfg.ContactRateLimitBurst)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.SendGridAPIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.SendGridAPIKey)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("SENDGRID_TO", "sales@gpucloud.store")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://gpucloud.store,https://www.gpucloud.store")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "9090" || cfg.Env != "production" {
		t.Fatalf("unexpected port/env: %s/%s", cfg.Port, cfg.Env)
	}
	if cfg.EmailProvider != "ses" {
		t.Fatalf("expected normalized provider ses, got %q", cfg.EmailProvider)
	}
	if cfg.ProviderTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.ProviderTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.gpucloud.store" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
}

func TestParseInvalidDuration(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	if _, err := Parse(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestMailAddressFallbacks(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
	}{
		{name: "both set", from: "noreply@gpucloud.store", to: "sales@gpucloud.store", wantFrom: "noreply@gpucloud.store", wantTo: "sales@gpucloud.store"},
		{name: "only to", to: "sales@gpucloud.store", wantFrom: "sales@gpucloud.store", wantTo: "sales@gpucloud.store"},
		{name: "only from", from: "noreply@gpucloud.store", wantFrom: "noreply@gpucloud.store", wantTo: "noreply@gpucloud.store"},
		{name: "neither", wantFrom: DefaultFromAddress, wantTo: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{SendGridFrom: tc.from, SendGridTo: tc.to}
			if got := cfg.MailFrom(); got != tc.wantFrom {
				t.Fatalf("MailFrom() = %q, want %q", got, tc.wantFrom)
			}
			if got := cfg.MailTo(); got != tc.wantTo {
				t.Fatalf("MailTo() = %q, want %q", got, tc.wantTo)
			}
		})
	}
}
