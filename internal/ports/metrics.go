package ports

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type portsMetricsCollection struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	errorResponses  metric.Int64Counter
}

var metrics = mustNewPortsMetrics(otel.Meter("meeplestats/ports"))

func mustNewPortsMetrics(meter metric.Meter) portsMetricsCollection {
	requestCount, err := meter.Int64Counter(
		"ports/request_count",
		metric.WithDescription("Total number of requests received"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request count metric: %w", err))
	}

	requestDuration, err := meter.Float64Histogram(
		"ports/request_duration_seconds",
		metric.WithDescription("Processing time for received requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request duration metric: %w", err))
	}

	errorResponses, err := meter.Int64Counter(
		"ports/error_responses",
		metric.WithDescription("Error responses by cause"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create error response metric: %w", err))
	}

	return portsMetricsCollection{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		errorResponses:  errorResponses,
	}
}

func recordErrorResponse(ctx context.Context, cause string, statusCode int) {
	metrics.errorResponses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cause", cause),
		attribute.String("status_code", strconv.Itoa(statusCode)),
	))
}

// statusRecorder remembers the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func buildMetricsMiddleware(endpoint string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next(recorder, r)

			userAgent := r.UserAgent()
			if userAgent == "" {
				userAgent = "<missing>"
			}

			attributes := metric.WithAttributes(
				attribute.String("endpoint", endpoint),
				attribute.String("method", r.Method),
				attribute.String("status_code", strconv.Itoa(recorder.statusCode)),
				attribute.String("user_agent", userAgent),
			)

			metrics.requestCount.Add(r.Context(), 1, attributes)
			metrics.requestDuration.Record(r.Context(), time.Since(start).Seconds(), attributes)
		}
	}
}
