package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UsageCast/internal/domain/models"
	"UsageCast/pkg/logger"
	"UsageCast/pkg/metrics"
)

func newTestLoader(opts ...LoaderOption) *SeriesLoader {
	return NewSeriesLoader(logger.Nop(), metrics.New(prometheus.NewRegistry()), opts...)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSkipsHeaderAndSortsByTimestamp(t *testing.T) {
	path := writeTemp(t, "train.csv", "Timepoint,Usage\n2024-01-03,3\n2024-01-01,1\n\n2024-01-02,2\n")

	series, err := newTestLoader().Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{1, 2, 3}, series.Values())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Timestamp)
}

func TestLoadWithoutHeader(t *testing.T) {
	path := writeTemp(t, "train.csv", "2024-01-01 01:00:00,1.5\r\n2024-01-01 02:00:00,2.5\r\n")

	series, err := newTestLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, series.Values())
}

func TestLoadStrictFailsOnMalformedRow(t *testing.T) {
	path := writeTemp(t, "train.csv", "timestamp,value\n2024-01-01,1\n2024-01-02,abc\n")

	_, err := newTestLoader().Load(context.Background(), path)

	var malformed *models.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 3, malformed.Line)
	assert.Equal(t, "unparseable value", malformed.Reason)
	assert.Equal(t, "2024-01-02,abc", malformed.Text)
}

func TestLoadStrictRejectsExtraColumns(t *testing.T) {
	path := writeTemp(t, "train.csv", "2024-01-01,1,2\n")

	_, err := newTestLoader().Load(context.Background(), path)

	var malformed *models.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Reason, "expected 2 fields")
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	_, err := newTestLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))

	var ioErr *models.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
}

func TestLoadLenientKeepsGoodRows(t *testing.T) {
	content := "timestamp,value\n" +
		"2024-01-01 00:00:00,1\n" +
		"not-a-date,2\n" +
		"2024-01-01 02:00:00,NaN\n" +
		"2024-01-01 03:00:00\n" +
		"2024-01-01 04:00:00,4\n"
	path := writeTemp(t, "raw.csv", content)

	series, skipped, err := newTestLoader().LoadLenient(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, series.Values())
	require.Len(t, skipped, 3)
	assert.Equal(t, 3, skipped[0].Line)
	assert.Equal(t, "unparseable timestamp", skipped[0].Reason)
	assert.Equal(t, "non-finite value", skipped[1].Reason)
	assert.Contains(t, skipped[2].Reason, "expected 2 fields")
}

func TestLoadLenientEmptyFile(t *testing.T) {
	path := writeTemp(t, "raw.csv", "")

	series, skipped, err := newTestLoader().LoadLenient(context.Background(), path)

	require.NoError(t, err)
	assert.Empty(t, series)
	assert.Empty(t, skipped)
}

func TestParseUsesLoaderLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	series, _, err := newTestLoader(WithLocation(loc)).Parse("2024-03-10 00:30:00,1\n", "inline", ModeStrict)

	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, loc, series[0].Timestamp.Location())
	assert.Equal(t, 0, series[0].Timestamp.Hour())
}

func TestIsHeader(t *testing.T) {
	cases := map[string]bool{
		"Timepoint,Usage":      true,
		"timestamp,value":      true,
		"DATE,VALUE":           true,
		"time,5":               false,
		"2024-01-01,5":         false,
		"foo,bar":              false,
		"datetime,usage,extra": true,
	}
	for line, want := range cases {
		assert.Equal(t, want, isHeader(line), line)
	}
}
