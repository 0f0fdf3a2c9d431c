package repository

import (
	"context"

	"UsageCast/internal/domain/models"
)

// SeriesSource reads observation series from files.
type SeriesSource interface {
	Load(ctx context.Context, path string) (models.Series, error)
	LoadLenient(ctx context.Context, path string) (models.Series, []models.SkippedRow, error)
	// ParseLenient applies the lenient rules to in-memory content; source labels skipped rows.
	ParseLenient(content, source string) (models.Series, []models.SkippedRow, error)
}

// BucketSink writes aggregated daily buckets.
type BucketSink interface {
	Render(buckets []models.DailyBucket) []byte
	Write(ctx context.Context, path string, buckets []models.DailyBucket) error
}

// Metrics records pipeline activity.
type Metrics interface {
	RecordRowsLoaded(mode string, n int)
	RecordRowsSkipped(mode string, n int)
	RecordForecast(backend, outcome string)
	RecordEvaluation(predictor string, m models.ErrorMetrics)
	RecordLatency(op string, seconds float64)
}
