package repository

import (
	"bytes"
	"context"
	"os"

	"github.com/shopspring/decimal"

	"UsageCast/internal/domain/models"
	domrepo "UsageCast/internal/domain/repository"
)

// DailyHeader is the fixed header of the aggregated file.
const DailyHeader = "Timepoint,Usage"

const dayLayout = "2006-01-02"

// DailyWriter renders daily buckets as a two-column CSV file.
type DailyWriter struct{}

func NewDailyWriter() *DailyWriter { return &DailyWriter{} }

// Render produces the file body; buckets are written in the order given.
func (w *DailyWriter) Render(buckets []models.DailyBucket) []byte {
	var buf bytes.Buffer
	buf.WriteString(DailyHeader)
	buf.WriteByte('\n')
	for _, b := range buckets {
		buf.WriteString(b.Day.Format(dayLayout))
		buf.WriteByte(',')
		buf.WriteString(decimal.NewFromFloat(b.Total).StringFixed(4))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write replaces path with the rendered buckets in a single write.
func (w *DailyWriter) Write(ctx context.Context, path string, buckets []models.DailyBucket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, w.Render(buckets), 0o644); err != nil {
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

var _ domrepo.BucketSink = (*DailyWriter)(nil)
