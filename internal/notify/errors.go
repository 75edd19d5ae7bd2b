package notify

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError means the provider cannot be used because required
// settings are missing. It is raised before any network call.
type ConfigurationError struct {
	Provider string
	Missing  []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("notify: %s not configured: missing %s", e.Provider, strings.Join(e.Missing, ", "))
}

// Guidance is the operator-facing message returned to callers.
func (e *ConfigurationError) Guidance() string {
	switch e.Provider {
	case ProviderSES:
		return "Email provider not configured. Set SENDGRID_TO (or SENDGRID_FROM) and AWS credentials for SES."
	default:
		return "Email provider not configured. Set SENDGRID_API_KEY and SENDGRID_TO (or SENDGRID_FROM) environment variables."
	}
}

// ProviderError means the delivery provider answered but rejected the message.
type ProviderError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("notify: %s rejected message with status %d", e.Provider, e.StatusCode)
}

// Label is the short error name exposed in gateway responses.
func (e *ProviderError) Label() string {
	return displayName(e.Provider) + " error"
}

func displayName(provider string) string {
	switch provider {
	case ProviderSendGrid:
		return "SendGrid"
	case ProviderSES:
		return "SES"
	default:
		return provider
	}
}

// AsProviderError unwraps a provider rejection from err.
func AsProviderError(err error) (*ProviderError, bool) {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// AsConfigurationError unwraps a configuration failure from err.
func AsConfigurationError(err error) (*ConfigurationError, bool) {
	var cerr *ConfigurationError
	if errors.As(err, &cerr) {
		return cerr, true
	}
	return nil, false
}
