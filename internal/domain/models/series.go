package models

import "time"

// Observation is a single timestamped reading.
type Observation struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is an ordered sequence of observations, ascending by timestamp once loaded.
type Series []Observation

// Values returns the numeric values in series order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, o := range s {
		out[i] = o.Value
	}
	return out
}

// Timestamps returns the timestamps in series order.
func (s Series) Timestamps() []time.Time {
	out := make([]time.Time, len(s))
	for i, o := range s {
		out[i] = o.Timestamp
	}
	return out
}

// Last returns the final observation and false when the series is empty.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// Tail returns at most the last n observations.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// DailyBucket is one calendar day's summed total.
type DailyBucket struct {
	Day   time.Time `json:"day"` // midnight UTC of the civil date
	Total float64   `json:"total"`
}

// SkippedRow describes a row dropped by the lenient loader.
type SkippedRow struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// AggregateReport summarizes one aggregation pass.
type AggregateReport struct {
	Rows    int           `json:"rows"`
	Skipped int           `json:"skipped"`
	Days    int           `json:"days"`
	Buckets []DailyBucket `json:"buckets,omitempty"`
}
