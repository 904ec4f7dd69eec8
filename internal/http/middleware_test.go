package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type storageError struct{}

func (storageError) Error() string { return "storage unavailable" }

func TestClassifyErrorTypeReturnsInnermostType(t *testing.T) {
	wrapped := fmt.Errorf("reserve amenity: %w", fmt.Errorf("lookup: %w", storageError{}))

	if got := classifyErrorType(wrapped); got != "http.storageError" {
		t.Fatalf("expected innermost type, got %q", got)
	}
	if got := classifyErrorType(nil); got != "unknown" {
		t.Fatalf("expected unknown for nil, got %q", got)
	}
}

func TestWithTraceIDs(t *testing.T) {
	attrs := withTraceIDs(context.Background(), "status", 200)
	if len(attrs) != 2 {
		t.Fatalf("expected attrs untouched without a span, got %v", attrs)
	}

	spanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext)
	attrs = withTraceIDs(ctx, "status", 200)
	if len(attrs) != 6 || attrs[2] != "trace_id" || attrs[3] != spanContext.TraceID().String() {
		t.Fatalf("expected trace and span ids, got %v", attrs)
	}
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/forms/residents", nil)

	h := &Handler{}
	h.writeError(c, errors.New("connection reset"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	problem := decodeProblem(t, w)
	if problem.Type != problemTypeInternal || problem.Detail != "internal server error" {
		t.Fatalf("unexpected problem: %+v", problem)
	}
	if len(c.Errors) != 1 {
		t.Fatalf("expected the error to be attached to the context")
	}
}
