package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"tasknotes/internal/core/port"
)

const tracerName = "tasknotes"

// OTELProbe implements Telemetry using OpenTelemetry spans, zap logs and the Prometheus AppMetrics.
type OTELProbe struct {
	logger  *zap.Logger
	metrics *AppMetrics
}

func NewOTELProbe(logger *zap.Logger, metrics *AppMetrics) port.Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
	}
}

// OTelSpan wraps an OpenTelemetry span behind port.Span.
type OTelSpan struct {
	span trace.Span
}

func (s *OTelSpan) End() {
	s.span.End()
}

func (s *OTelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toAttributes(attrs)...)
}

func (s *OTelSpan) SetStatus(code string, message string) {
	switch code {
	case "ok":
		s.span.SetStatus(codes.Ok, message)
	case "error":
		s.span.SetStatus(codes.Error, message)
	default:
		s.span.SetStatus(codes.Unset, message)
	}
}

func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func toAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			out = append(out, attribute.String(key, v))
		case int:
			out = append(out, attribute.Int(key, v))
		case int64:
			out = append(out, attribute.Int64(key, v))
		case float64:
			out = append(out, attribute.Float64(key, v))
		case bool:
			out = append(out, attribute.Bool(key, v))
		default:
			out = append(out, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return out
}

func (p *OTELProbe) start(ctx context.Context, name string, standard []attribute.KeyValue, attrs map[string]interface{}) (context.Context, port.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name,
		trace.WithAttributes(append(standard, toAttributes(attrs)...)...))

	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	return p.start(ctx, fmt.Sprintf("repository.%s.%s", entity, operation), []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}, attrs)
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, userID int, attrs map[string]interface{}) (context.Context, port.Span) {
	return p.start(ctx, fmt.Sprintf("service.%s.%s", service, operation), []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.Int("user.id", userID),
		attribute.String("component", "service"),
	}, attrs)
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordDatabaseOperation(ctx, operation, entity)
	}

	if err != nil {
		p.logger.Error("Repository operation failed",
			zap.String("operation", operation),
			zap.String("entity", entity),
			zap.Duration("duration", duration),
			zap.Error(err))
	}
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, userID int, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if err != nil {
		p.logger.Warn("Service operation failed",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("user_id", userID),
			zap.Duration("duration", duration),
			zap.Error(err))
	}
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, userID int, metadata map[string]interface{}) {
	if p.metrics != nil {
		if entity == "user" {
			p.metrics.RecordUserOperation(ctx, event)
		} else {
			p.metrics.RecordItemOperation(ctx, entity, event)
		}
	}

	trace.SpanFromContext(ctx).AddEvent(fmt.Sprintf("%s.%s", entity, event), trace.WithAttributes(
		append(toAttributes(metadata),
			attribute.String("entity_id", entityID),
			attribute.Int("user_id", userID))...,
	))

	p.logger.Info("Business event recorded",
		zap.String("event", event),
		zap.String("entity", entity),
		zap.String("entity_id", entityID),
		zap.Int("user_id", userID))
}

func (p *OTELProbe) RecordCacheLookup(ctx context.Context, key string, hit bool) {
	if p.metrics == nil {
		return
	}

	kind, _, _ := strings.Cut(key, ":")
	if hit {
		p.metrics.RecordCacheHit(ctx, kind)
	} else {
		p.metrics.RecordCacheMiss(ctx, kind)
	}
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
	p.logger.Error("Operation error recorded",
		zap.String("operation", operation),
		zap.Error(err),
		zap.Any("metadata", metadata))
}
