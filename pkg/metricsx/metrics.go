package metricsx

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CandidatesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_created_total",
			Help: "Total number of candidates created together with their first application",
		},
	)

	StageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stage_transitions_total",
			Help: "Interview stage updates by outcome",
		},
		[]string{"outcome"},
	)

	ResumeUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_uploads_total",
			Help: "Resume uploads by stored file type",
		},
		[]string{"file_type"},
	)

	PositionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "position_cache_lookups_total",
			Help: "Position directory cache lookups by result",
		},
		[]string{"result"},
	)
)

// Stage transition outcomes.
const (
	OutcomeUpdated  = "updated"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func statusOf(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	if e, ok := errx.As(err); ok {
		return e.HTTPStatus
	}
	return fiber.StatusInternalServerError
}

// Handler exposes the default registry for scraping.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
