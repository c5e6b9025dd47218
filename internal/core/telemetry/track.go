package telemetry

import (
	"context"
	"time"

	"tasknotes/internal/core/port"
)

// TrackRepository opens a repository span and returns a finisher that closes it,
// records the outcome and hands err back unchanged.
func TrackRepository(ctx context.Context, probe port.Telemetry, operation, entity string, attrs map[string]interface{}) (context.Context, func(err error) error) {
	ctx, span := probe.StartRepositorySpan(ctx, operation, entity, attrs)
	startTime := time.Now()

	return ctx, func(err error) error {
		finish(span, err)
		probe.RecordRepositoryOperation(ctx, operation, entity, time.Since(startTime), err)
		return err
	}
}

// TrackService is the service-layer counterpart of TrackRepository.
func TrackService(ctx context.Context, probe port.Telemetry, service, operation string, userID int) (context.Context, func(err error) error) {
	ctx, span := probe.StartServiceSpan(ctx, service, operation, userID, nil)
	startTime := time.Now()

	return ctx, func(err error) error {
		probe.RecordServiceOperation(ctx, service, operation, userID, time.Since(startTime), err)
		finish(span, err)
		return err
	}
}

func finish(span port.Span, err error) {
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus("ok", "")
	}

	span.End()
}
