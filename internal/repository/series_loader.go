package repository

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"UsageCast/internal/domain/models"
	domrepo "UsageCast/internal/domain/repository"
	"UsageCast/pkg/logger"
	"UsageCast/pkg/util"
)

// Mode selects how the loader treats rows it cannot parse.
type Mode string

const (
	// ModeStrict fails the whole load on the first bad row.
	ModeStrict Mode = "strict"
	// ModeLenient drops bad rows with a warning and keeps going.
	ModeLenient Mode = "lenient"
)

const delimiter = ","

var headerKeywords = []string{"time", "date", "value", "usage"}

// SeriesLoader reads two-column timestamp,value files.
type SeriesLoader struct {
	log     *logger.Logger
	metrics domrepo.Metrics
	loc     *time.Location
}

type LoaderOption func(*SeriesLoader)

// WithLocation sets the location used for timestamps that carry no offset.
func WithLocation(loc *time.Location) LoaderOption {
	return func(l *SeriesLoader) {
		if loc != nil {
			l.loc = loc
		}
	}
}

func NewSeriesLoader(log *logger.Logger, metrics domrepo.Metrics, opts ...LoaderOption) *SeriesLoader {
	l := &SeriesLoader{log: log, metrics: metrics, loc: time.UTC}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path in strict mode.
func (l *SeriesLoader) Load(ctx context.Context, path string) (models.Series, error) {
	content, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	series, _, err := l.Parse(content, path, ModeStrict)
	return series, err
}

// LoadLenient reads path in lenient mode and reports the rows it dropped.
func (l *SeriesLoader) LoadLenient(ctx context.Context, path string) (models.Series, []models.SkippedRow, error) {
	content, err := l.read(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return l.Parse(content, path, ModeLenient)
}

func (l *SeriesLoader) read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &models.IOError{Op: "read", Path: path, Err: err}
	}
	return string(b), nil
}

// ParseLenient is Parse in lenient mode.
func (l *SeriesLoader) ParseLenient(content, source string) (models.Series, []models.SkippedRow, error) {
	return l.Parse(content, source, ModeLenient)
}

type numberedLine struct {
	no   int
	text string
}

// Parse turns file content into a series sorted by timestamp.
// source only labels errors and log lines.
func (l *SeriesLoader) Parse(content, source string, mode Mode) (models.Series, []models.SkippedRow, error) {
	lines := splitLines(content)
	if len(lines) > 0 && isHeader(lines[0].text) {
		lines = lines[1:]
	}

	series := make(models.Series, 0, len(lines))
	var skipped []models.SkippedRow

	for _, ln := range lines {
		obs, reason := l.parseRow(ln.text)
		if reason == "" {
			series = append(series, obs)
			continue
		}
		if mode == ModeStrict {
			return nil, nil, &models.MalformedInputError{Source: source, Line: ln.no, Text: ln.text, Reason: reason}
		}
		skipped = append(skipped, models.SkippedRow{Source: source, Line: ln.no, Text: ln.text, Reason: reason})
		l.log.Warn("skipping malformed row",
			logger.String("source", source),
			logger.Int("line", ln.no),
			logger.String("reason", reason),
		)
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	l.metrics.RecordRowsLoaded(string(mode), len(series))
	if len(skipped) > 0 {
		l.metrics.RecordRowsSkipped(string(mode), len(skipped))
	}
	l.log.Debug("series parsed",
		logger.String("source", source),
		logger.String("mode", string(mode)),
		logger.Int("rows", len(series)),
		logger.Int("skipped", len(skipped)),
	)
	return series, skipped, nil
}

func (l *SeriesLoader) parseRow(line string) (models.Observation, string) {
	fields := strings.Split(line, delimiter)
	if len(fields) != 2 {
		return models.Observation{}, fmt.Sprintf("expected 2 fields, got %d", len(fields))
	}
	ts, ok := util.ParseTimestamp(fields[0], l.loc)
	if !ok {
		return models.Observation{}, "unparseable timestamp"
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return models.Observation{}, "unparseable value"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.Observation{}, "non-finite value"
	}
	return models.Observation{Timestamp: ts, Value: v}, ""
}

func splitLines(content string) []numberedLine {
	raw := strings.Split(content, "\n")
	out := make([]numberedLine, 0, len(raw))
	for i, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, numberedLine{no: i + 1, text: line})
	}
	return out
}

// isHeader reports whether the first line names its columns instead of holding data.
func isHeader(line string) bool {
	lower := strings.ToLower(line)
	found := false
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	fields := strings.Split(line, delimiter)
	if len(fields) == 2 {
		if util.IsNumeric(fields[1]) {
			return false
		}
	}
	return true
}

var _ domrepo.SeriesSource = (*SeriesLoader)(nil)
