package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"UsageCast/internal/domain/models"
	domrepo "UsageCast/internal/domain/repository"
	"UsageCast/pkg/logger"
	"UsageCast/pkg/util"
)

// DailyAggregator sums raw readings into one total per day of record.
type DailyAggregator struct {
	source  domrepo.SeriesSource
	sink    domrepo.BucketSink
	log     *logger.Logger
	metrics domrepo.Metrics
}

func NewDailyAggregator(source domrepo.SeriesSource, sink domrepo.BucketSink, log *logger.Logger, metrics domrepo.Metrics) *DailyAggregator {
	return &DailyAggregator{source: source, sink: sink, log: log, metrics: metrics}
}

// DayOfRecord returns the civil day a reading is booked to.
// A reading stamped during hour 0 closes the previous day.
func DayOfRecord(t time.Time) time.Time {
	day := util.CivilDate(t)
	if t.Hour() == 0 {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// Aggregate buckets series by day of record, ascending, without filling gaps.
func Aggregate(series models.Series) []models.DailyBucket {
	totals := make(map[time.Time]float64)
	for _, o := range series {
		totals[DayOfRecord(o.Timestamp)] += o.Value
	}
	out := make([]models.DailyBucket, 0, len(totals))
	for d, total := range totals {
		out = append(out, models.DailyBucket{Day: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// Aggregate is the method form of the package-level Aggregate.
func (a *DailyAggregator) Aggregate(series models.Series) []models.DailyBucket {
	return Aggregate(series)
}

// AggregateByDay reads inputPath leniently and writes the daily file to outputPath.
func (a *DailyAggregator) AggregateByDay(ctx context.Context, inputPath, outputPath string) (*models.AggregateReport, error) {
	start := time.Now()
	defer func() { a.metrics.RecordLatency("aggregate", time.Since(start).Seconds()) }()

	collector := logger.NewCollector()
	a.log.AttachCollector(collector)
	series, skipped, err := a.source.LoadLenient(ctx, inputPath)
	a.log.DetachCollector()
	if err != nil {
		return nil, err
	}

	report, err := a.report(series, skipped)
	if err != nil {
		return nil, err
	}
	if err := a.sink.Write(ctx, outputPath, report.Buckets); err != nil {
		return nil, err
	}

	if report.Skipped > 0 {
		collector.Flush(a.log)
	}
	a.summarize(inputPath, report)
	a.log.Info("daily file written",
		logger.String("output", outputPath),
		logger.Int("days", report.Days),
	)
	return report, nil
}

// AggregateContent runs the lenient pass over in-memory CSV text and returns the report
// with the rendered daily file.
func (a *DailyAggregator) AggregateContent(ctx context.Context, content string) (*models.AggregateReport, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	series, skipped, err := a.source.ParseLenient(content, "request")
	if err != nil {
		return nil, nil, err
	}
	report, err := a.report(series, skipped)
	if err != nil {
		return nil, nil, err
	}
	a.summarize("request", report)
	return report, a.sink.Render(report.Buckets), nil
}

func (a *DailyAggregator) report(series models.Series, skipped []models.SkippedRow) (*models.AggregateReport, error) {
	buckets := Aggregate(series)
	if err := checkTotals(buckets); err != nil {
		return nil, err
	}
	return &models.AggregateReport{
		Rows:    len(series),
		Skipped: len(skipped),
		Days:    len(buckets),
		Buckets: buckets,
	}, nil
}

// checkTotals rejects days whose sum overflowed float64.
func checkTotals(buckets []models.DailyBucket) error {
	for _, b := range buckets {
		if math.IsInf(b.Total, 0) || math.IsNaN(b.Total) {
			return models.NewInvalidInput("daily total for %s is not finite", b.Day.Format("2006-01-02"))
		}
	}
	return nil
}

func (a *DailyAggregator) summarize(source string, r *models.AggregateReport) {
	if r.Skipped == 0 {
		return
	}
	a.log.Warn("skipped rows",
		logger.String("source", source),
		logger.Int("skipped", r.Skipped),
		logger.Int("rows", r.Rows),
	)
}
