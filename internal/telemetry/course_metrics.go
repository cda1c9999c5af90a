package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// Course generation metrics
	courseGenerateCounter  metric.Int64Counter
	courseGenerateDuration metric.Float64Histogram
	courseGenerateSize     metric.Int64Histogram

	courseGenerateErrorCounter metric.Int64Counter
)

// InitCourseMetrics initializes course generation metrics
func InitCourseMetrics() error {
	meter := otel.Meter("courseway.course")

	var err error

	courseGenerateCounter, err = meter.Int64Counter(
		"course.generate.count",
		metric.WithDescription("Number of course generation operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return err
	}

	courseGenerateDuration, err = meter.Float64Histogram(
		"course.generate.duration",
		metric.WithDescription("Duration of course generation operations"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	courseGenerateSize, err = meter.Int64Histogram(
		"course.generate.size",
		metric.WithDescription("Experiences scheduled per generated course"),
		metric.WithUnit("{items}"),
	)
	if err != nil {
		return err
	}

	courseGenerateErrorCounter, err = meter.Int64Counter(
		"course.generate.errors",
		metric.WithDescription("Number of course generation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordGenerateSuccess records a successful course generation
func RecordGenerateSuccess(ctx context.Context, hall string, durationMs float64, experienceCount int64) {
	if courseGenerateCounter != nil {
		courseGenerateCounter.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("status", "success"),
				attribute.String("hall", hall),
			),
		)
	}

	if courseGenerateDuration != nil {
		courseGenerateDuration.Record(ctx, durationMs,
			metric.WithAttributes(attribute.String("status", "success")),
		)
	}

	if courseGenerateSize != nil {
		courseGenerateSize.Record(ctx, experienceCount,
			metric.WithAttributes(attribute.String("hall", hall)),
		)
	}
}

// RecordGenerateError records a course generation error
func RecordGenerateError(ctx context.Context, errorType string, durationMs float64) {
	if courseGenerateErrorCounter != nil {
		courseGenerateErrorCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("error_type", errorType)),
		)
	}

	if courseGenerateDuration != nil {
		courseGenerateDuration.Record(ctx, durationMs,
			metric.WithAttributes(
				attribute.String("status", "error"),
				attribute.String("error_type", errorType),
			),
		)
	}
}
