package inquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gpucloudstore/gpucloud-site/internal/leads"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
)

// DefaultEndpoint is the gateway path on the site origin.
const DefaultEndpoint = "/api/contact"

const maxErrorBodyBytes = 64 << 10

// ErrInFlight is returned when Submit is called while a request is pending.
var ErrInFlight = errors.New("inquiry: submission already in flight")

// ValidationError blocks a submission before any request is made.
type ValidationError struct {
	Fields leads.FieldErrors
}

func (e *ValidationError) Error() string {
	return "inquiry: " + e.Fields.Error()
}

// SubmitError describes a failed attempt. Network is true when no response
// was received at all.
type SubmitError struct {
	Network    bool
	StatusCode int
	Err        error
}

func (e *SubmitError) Error() string {
	if e.Network {
		return fmt.Sprintf("inquiry: network error: %v", e.Err)
	}
	return fmt.Sprintf("inquiry: gateway returned status %d", e.StatusCode)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Client posts validated lead submissions to the gateway and owns the
// resulting outcome. Attempts are never retried automatically.
type Client struct {
	endpoint   string
	httpClient *http.Client
	copy       Copy
	logger     *logging.Logger

	mu      sync.Mutex
	outcome Outcome
}

// NewClient creates a submission client for the given gateway URL.
func NewClient(endpoint string, httpClient *http.Client, copy Copy, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Default()
	}
	if copy == (Copy{}) {
		copy = DefaultCopy()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		copy:       copy,
		logger:     logger,
		outcome:    Idle(),
	}
}

// Outcome returns the current submission outcome.
func (c *Client) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// SetCopy swaps the message copy used for future outcomes.
func (c *Client) SetCopy(copy Copy) {
	c.mu.Lock()
	c.copy = copy
	c.mu.Unlock()
}

// Submit validates the form against selections and, when valid, sends a
// single POST. On success the form is reset; selections belong to their
// owner and are left alone. A call while another is loading returns
// ErrInFlight without touching the network.
func (c *Client) Submit(ctx context.Context, form *Form, selections []leads.Selection) (Outcome, error) {
	c.mu.Lock()
	if c.outcome.State == StateLoading {
		current := c.outcome
		c.mu.Unlock()
		return current, ErrInFlight
	}
	sub, errs := form.Validate(selections)
	if len(errs) > 0 {
		current := c.outcome
		c.mu.Unlock()
		return current, &ValidationError{Fields: errs}
	}
	c.outcome = Outcome{State: StateLoading}
	copy := c.copy
	c.mu.Unlock()

	outcome, err := c.post(ctx, sub, copy)

	c.mu.Lock()
	c.outcome = outcome
	c.mu.Unlock()

	if err == nil {
		form.Reset()
	}
	return outcome, err
}

func (c *Client) post(ctx context.Context, sub leads.Submission, copy Copy) (Outcome, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return Outcome{State: StateError, Message: copy.SubmitError}, fmt.Errorf("inquiry: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Outcome{State: StateError, Message: copy.NetworkError}, &SubmitError{Network: true, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("contact submission failed to reach gateway", "error", err)
		return Outcome{State: StateError, Message: copy.NetworkError}, &SubmitError{Network: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return Outcome{State: StateSuccess, Message: copy.Success}, nil
	}

	message := copy.SubmitError
	if msg := errorField(resp.Body); msg != "" {
		message = msg
	}
	c.logger.Info("contact submission rejected", "status", resp.StatusCode)
	return Outcome{State: StateError, Message: message}, &SubmitError{StatusCode: resp.StatusCode}
}

// errorField extracts the "error" string from a JSON error body.
func errorField(body io.Reader) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBodyBytes)).Decode(&parsed); err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Error)
}
