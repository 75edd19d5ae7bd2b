package bootstrap

import (
	"context"
	"net/http"

	"github.com/gpucloudstore/gpucloud-site/internal/api/router"
	"github.com/gpucloudstore/gpucloud-site/internal/catalog"
	appconfig "github.com/gpucloudstore/gpucloud-site/internal/config"
	httpmiddleware "github.com/gpucloudstore/gpucloud-site/internal/http/middleware"
	"github.com/gpucloudstore/gpucloud-site/internal/leads"
	"github.com/gpucloudstore/gpucloud-site/internal/notify"
	"github.com/gpucloudstore/gpucloud-site/internal/observability/metrics"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runtime is the wired HTTP surface shared by the server and lambda binaries.
type Runtime struct {
	Handler  http.Handler
	Notifier *notify.Service
	Metrics  *metrics.ContactMetrics
	Limiter  *httpmiddleware.RateLimiter
}

// BuildRuntime wires config into a ready-to-serve handler.
func BuildRuntime(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, sesClient SESClientFunc) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		contactMetrics *metrics.ContactMetrics
		metricsHandler http.Handler
	)
	if cfg != nil && cfg.MetricsEnabled {
		metricsHandler, contactMetrics = BuildMetrics()
	}

	var observer notify.Observer
	if contactMetrics != nil {
		observer = contactMetrics
	}
	notifier, err := BuildNotifier(ctx, cfg, logger, observer, sesClient)
	if err != nil {
		return nil, err
	}

	var submissions leads.SubmissionObserver
	if contactMetrics != nil {
		submissions = contactMetrics
	}
	limiter := httpmiddleware.NewRateLimiter(cfg.ContactRateLimitRPS, cfg.ContactRateLimitBurst)
	handler := router.New(&router.Config{
		Logger:             logger,
		ContactHandler:     leads.NewHandler(notifier, cfg.BrandLabel, submissions, logger),
		CatalogHandler:     catalog.NewHandler(),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ContactLimiter:     limiter,
	})

	return &Runtime{
		Handler:  handler,
		Notifier: notifier,
		Metrics:  contactMetrics,
		Limiter:  limiter,
	}, nil
}

// BuildMetrics creates a private registry with the contact collectors and
// the Go runtime collectors, and the /metrics handler serving it.
func BuildMetrics() (http.Handler, *metrics.ContactMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewContactMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}
