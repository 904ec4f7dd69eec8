package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"condo-forms/internal/validation"
)

const (
	serviceTracerName = "condo-forms/internal/service"
	serviceMeterName  = "condo-forms/service"
	maxBatchItems     = 100
)

type Service struct {
	validate      *validator.Validate
	checkCounter  metric.Int64Counter
	jwtSigningKey []byte
	jwtIssuer     string
	now           func() time.Time
}

type Option func(*Service)

func New(options ...Option) *Service {
	svc := &Service{
		jwtIssuer: "condo-backend",
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}

	svc.validate = newFormValidator(func() time.Time { return svc.now() })

	counter, err := otel.Meter(serviceMeterName).Int64Counter(
		"condo.validation.check.count",
		metric.WithDescription("Total de campos validados, por campo e resultado"),
	)
	if err != nil {
		slog.Error("create validation counter", "error", err)
	}
	svc.checkCounter = counter

	return svc
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithAuthConfig(signingKey string, issuer string) Option {
	return func(s *Service) {
		s.jwtSigningKey = []byte(strings.TrimSpace(signingKey))
		if strings.TrimSpace(issuer) != "" {
			s.jwtIssuer = strings.TrimSpace(issuer)
		}
	}
}

func (s *Service) ValidateField(ctx context.Context, field string, value string) (FieldResult, error) {
	ctx, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.ValidateField")
	defer span.End()

	field = normalizeFieldName(field)
	result, ok := checkField(field, value, s.now)
	if !ok {
		return FieldResult{}, notFoundError(fmt.Sprintf("field %q is not supported", field))
	}

	span.SetAttributes(attribute.String("validation.field", field), attribute.Bool("validation.valid", result.Valid))
	s.recordCheck(ctx, field, result.Valid)
	return result, nil
}

func (s *Service) FormatField(ctx context.Context, field string, value string) (FormatOutput, error) {
	_, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.FormatField")
	defer span.End()

	field = normalizeFieldName(field)
	format, ok := lookupFormatter(field)
	if !ok {
		return FormatOutput{}, notFoundError(fmt.Sprintf("field %q has no formatter", field))
	}
	span.SetAttributes(attribute.String("validation.field", field))

	return FormatOutput{Field: field, Value: format(value)}, nil
}

func (s *Service) ParseMoney(ctx context.Context, value string) MoneyOutput {
	_, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.ParseMoney")
	defer span.End()

	return MoneyOutput{
		Amount:    validation.UnformatMoney(value),
		Formatted: validation.FormatMoney(value),
	}
}

func (s *Service) ValidateBatch(ctx context.Context, input BatchInput) (BatchOutput, error) {
	ctx, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.ValidateBatch")
	defer span.End()

	if len(input.Items) == 0 {
		return BatchOutput{}, validationError("items must contain at least one field")
	}
	if len(input.Items) > maxBatchItems {
		return BatchOutput{}, validationError("items must contain at most " + strconv.Itoa(maxBatchItems) + " fields")
	}

	batchID, err := newUUIDV7()
	if err != nil {
		return BatchOutput{}, err
	}

	output := BatchOutput{BatchID: batchID, Valid: true, Results: make([]FieldResult, 0, len(input.Items))}
	for idx, item := range input.Items {
		field := normalizeFieldName(item.Field)
		result, ok := checkField(field, item.Value, s.now)
		if !ok {
			return BatchOutput{}, validationError(fmt.Sprintf("items[%d].field %q is not supported", idx, field))
		}
		s.recordCheck(ctx, field, result.Valid)
		output.Valid = output.Valid && result.Valid
		output.Results = append(output.Results, result)
	}

	span.SetAttributes(
		attribute.String("validation.batch_id", batchID),
		attribute.Int("validation.batch_size", len(input.Items)),
		attribute.Bool("validation.valid", output.Valid),
	)
	slog.DebugContext(ctx, "batch validated", "batch_id", batchID, "items", len(input.Items), "valid", output.Valid, "trace_id", trace.SpanContextFromContext(ctx).TraceID().String())
	return output, nil
}

func (s *Service) recordCheck(ctx context.Context, field string, valid bool) {
	if s.checkCounter == nil {
		return
	}
	s.checkCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("field", field),
		attribute.Bool("valid", valid),
	))
}

func normalizeFieldName(field string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(field)), "-", "_")
}

func newUUIDV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}
	return id.String(), nil
}
