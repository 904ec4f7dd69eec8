package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// httpMetrics holds the request instruments. A nil instrument means its
// creation failed and recording is skipped.
type httpMetrics struct {
	requests       metric.Int64Counter
	duration       metric.Float64Histogram
	internalErrors metric.Int64Counter
}

func newHTTPMetrics(logger *slog.Logger) httpMetrics {
	meter := otel.Meter("condo-forms/http")
	var m httpMetrics
	var err error

	m.requests, err = meter.Int64Counter(
		"condo.http.server.request.count",
		metric.WithDescription("Requests HTTP atendidas pela API de formulários"),
	)
	if err != nil {
		logger.Error("create request counter", "error", err)
	}
	m.duration, err = meter.Float64Histogram(
		"condo.http.server.request.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Duração das requests HTTP em milissegundos"),
	)
	if err != nil {
		logger.Error("create request duration histogram", "error", err)
	}
	m.internalErrors, err = meter.Int64Counter(
		"condo.http.server.internal_error.count",
		metric.WithDescription("Respostas HTTP 5xx"),
	)
	if err != nil {
		logger.Error("create internal error counter", "error", err)
	}
	return m
}

func (m httpMetrics) record(ctx context.Context, attrs []attribute.KeyValue, status int, durationMs float64, lastErr error) {
	if m.requests != nil {
		m.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if m.duration != nil {
		m.duration.Record(ctx, durationMs, metric.WithAttributes(attrs...))
	}
	if status < http.StatusInternalServerError || m.internalErrors == nil {
		return
	}
	errorType := "unknown"
	if lastErr != nil {
		errorType = classifyErrorType(lastErr)
	}
	m.internalErrors.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("error.type", errorType))...))
}

func requestObservabilityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	metrics := newHTTPMetrics(logger)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		durationMs := float64(time.Since(start)) / float64(time.Millisecond)

		var lastErr error
		if len(c.Errors) > 0 {
			lastErr = c.Errors.Last().Err
		}
		metrics.record(ctx, []attribute.KeyValue{
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		}, status, durationMs, lastErr)

		logAttrs := withTraceIDs(ctx,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", status,
			"duration_ms", durationMs,
			"request_id", c.Writer.Header().Get(headerRequestID),
			"client_ip", c.ClientIP(),
		)
		if lastErr != nil {
			logAttrs = append(logAttrs, "error", lastErr.Error(), "error_type", classifyErrorType(lastErr))
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "http request", logAttrs...)
	}
}

func panicRecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			ctx := c.Request.Context()
			err := fmt.Errorf("panic recovered: %v", recovered)
			_ = c.Error(err)
			markSpanError(trace.SpanFromContext(ctx), err, "panic recovered", "panic")

			logger.ErrorContext(ctx, "panic recovered", withTraceIDs(ctx,
				"panic", recovered,
				"stack_trace", string(debug.Stack()),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", requestid.Get(c),
				"client_ip", c.ClientIP(),
			)...)

			writeProblemResponse(c, ProblemDetails{
				Status: http.StatusInternalServerError,
				Type:   problemTypeInternal,
				Title:  "Internal Server Error",
				Detail: "internal server error",
			})
		}()

		c.Next()
	}
}

func markSpanError(span trace.Span, err error, description string, errorType string) {
	if !span.SpanContext().IsValid() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.type", errorType),
	)
}

// withTraceIDs appends trace_id and span_id when ctx carries a sampled span.
func withTraceIDs(ctx context.Context, attrs ...any) []any {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return attrs
	}
	return append(attrs,
		"trace_id", spanContext.TraceID().String(),
		"span_id", spanContext.SpanID().String(),
	)
}

// classifyErrorType names the innermost wrapped error type.
func classifyErrorType(err error) string {
	if err == nil {
		return "unknown"
	}
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}
	return fmt.Sprintf("%T", err)
}
