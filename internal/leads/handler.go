package leads

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gpucloudstore/gpucloud-site/internal/notify"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxContactBodyBytes = 64 << 10

var contactTracer = otel.Tracer("gpucloud.internal.leads.contact")

// Notifier delivers envelopes to the sales inbox.
type Notifier interface {
	Settings() notify.Settings
	Deliver(ctx context.Context, env notify.Envelope) error
}

// SubmissionObserver records the outcome of each contact request.
type SubmissionObserver interface {
	ObserveSubmission(status string)
}

// Handler handles HTTP requests for contact submissions
type Handler struct {
	notifier Notifier
	brand    string
	metrics  SubmissionObserver
	logger   *logging.Logger
}

// NewHandler creates a new contact handler
func NewHandler(notifier Notifier, brand string, metrics SubmissionObserver, logger *logging.Logger) *Handler {
	if notifier == nil {
		panic("leads: notifier cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		notifier: notifier,
		brand:    brand,
		metrics:  metrics,
		logger:   logger,
	}
}

// ErrorResponse is the JSON body of every non-2xx gateway response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// CreateContact handles POST /api/contact requests
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := contactTracer.Start(r.Context(), "leads.contact.create", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("contact handler panic", "panic", rec)
			span.SetStatus(codes.Error, "panic")
			h.reject(w, "error", http.StatusInternalServerError, ErrorResponse{Error: InternalErrorMessage})
		}
	}()

	var req ContactRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode contact request", "error", err)
		span.RecordError(err)
		h.reject(w, "invalid", http.StatusBadRequest, ErrorResponse{Error: InvalidBodyMessage})
		return
	}

	sub := req.Submission()
	sub, errs := Validate(sub, sub.Selections)
	span.SetAttributes(attribute.Int("contact.selections", len(sub.Selections)))
	if len(errs) > 0 {
		h.logger.Info("contact submission rejected", "errors", errs.Error())
		h.reject(w, "invalid", http.StatusBadRequest, ErrorResponse{Error: GatewayMessage(errs)})
		return
	}

	settings := h.notifier.Settings()
	span.SetAttributes(attribute.String("notify.provider", settings.Provider))
	if err := settings.Check(); err != nil {
		h.notConfigured(w, err)
		return
	}

	env := BuildEnvelope(sub, h.brand, settings)
	if err := h.notifier.Deliver(ctx, env); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		h.deliveryFailed(w, err)
		return
	}

	h.logger.Info("contact submission delivered", "name", sub.Name, "selections", len(sub.Selections))
	h.observe("accepted")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) notConfigured(w http.ResponseWriter, err error) {
	msg := err.Error()
	if cerr, ok := notify.AsConfigurationError(err); ok {
		msg = cerr.Guidance()
	}
	h.logger.Warn("email provider not configured", "error", err)
	h.reject(w, "not_configured", http.StatusNotImplemented, ErrorResponse{Error: msg})
}

func (h *Handler) deliveryFailed(w http.ResponseWriter, err error) {
	if perr, ok := notify.AsProviderError(err); ok {
		h.logger.Error("provider rejected contact email", "provider", perr.Provider, "status", perr.StatusCode, "detail", perr.Detail)
		h.reject(w, "rejected", http.StatusBadGateway, ErrorResponse{Error: perr.Label(), Detail: perr.Detail})
		return
	}
	if _, ok := notify.AsConfigurationError(err); ok {
		h.notConfigured(w, err)
		return
	}
	h.logger.Error("failed to deliver contact email", "error", err)
	h.reject(w, "error", http.StatusInternalServerError, ErrorResponse{Error: InternalErrorMessage})
}

func (h *Handler) reject(w http.ResponseWriter, status string, code int, body ErrorResponse) {
	h.observe(status)
	writeJSON(w, code, body)
}

func (h *Handler) observe(status string) {
	if h.metrics != nil {
		h.metrics.ObserveSubmission(status)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
