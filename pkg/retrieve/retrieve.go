// Package retrieve selects the bounded subset of aggregated data relevant to
// one query intent. Retrieval never fails: a category with nothing in range
// yields an empty slice, and cap pressure shrinks slices instead of erroring.
package retrieve

import (
	"time"

	"github.com/papercomputeco/vitals/pkg/aggregate"
	"github.com/papercomputeco/vitals/pkg/classify"
	"github.com/papercomputeco/vitals/pkg/health"
)

const (
	// DefaultGlobalCap bounds the total items across all slices per query.
	DefaultGlobalCap = 100

	// DefaultCategoryCap bounds the items in any single category's slice.
	DefaultCategoryCap = 10

	// maxReadings bounds the paired blood pressure readings carried along
	// for rendering.
	maxReadings = 5

	// maxSamples bounds the raw heart rate samples carried along for
	// rendering.
	maxSamples = 5
)

// Slice is the retrieved data for one category. Daily entries stay in
// chronological order; truncation keeps the most recent entries.
type Slice struct {
	Category health.Category

	Daily          []health.DailyStat
	DiastolicDaily []health.DailyStat
	Readings       []health.Reading
	Samples        []health.Sample

	Trend          health.Trend
	DiastolicTrend health.Trend

	// Truncated marks that cap enforcement dropped in-range entries.
	Truncated bool
}

// Empty reports whether the slice carries no data for the requested range.
func (s *Slice) Empty() bool {
	return len(s.Daily) == 0 && len(s.Readings) == 0
}

// Result is the full retrieval output for one query.
type Result struct {
	Slices map[health.Category]*Slice

	// TotalItems is the number of cap-counted entries across all slices.
	TotalItems int

	// Truncated lists the categories that lost in-range entries to caps,
	// in intent order, for downstream disclosure.
	Truncated []health.Category
}

// Retriever applies the configured caps. The zero value is not usable; use New.
type Retriever struct {
	globalCap   int
	categoryCap int
}

// New creates a Retriever. Non-positive caps fall back to the defaults.
func New(globalCap, categoryCap int) *Retriever {
	if globalCap <= 0 {
		globalCap = DefaultGlobalCap
	}
	if categoryCap <= 0 {
		categoryCap = DefaultCategoryCap
	}
	return &Retriever{globalCap: globalCap, categoryCap: categoryCap}
}

// Retrieve filters each matched category's daily stats to the intent's time
// range and enforces the per-category and global caps. Categories are
// processed in intent order; once the global budget is spent, later
// categories receive empty (but valid) slices.
//
// Only Daily entries count toward the caps. DiastolicDaily mirrors the
// kept systolic dates, and the Readings and Samples extracts are bounded
// separately by maxReadings and maxSamples.
func (r *Retriever) Retrieve(intent classify.Intent, snap *aggregate.Snapshot) *Result {
	result := &Result{
		Slices: make(map[health.Category]*Slice, len(intent.Categories)),
	}

	for _, cat := range intent.Categories {
		slice := &Slice{Category: cat}
		result.Slices[cat] = slice

		series, ok := snap.Series[cat]
		if !ok {
			continue
		}

		slice.Trend = series.Trend
		slice.DiastolicTrend = series.DiastolicTrend

		eligible := filterRange(series.Daily, intent.Range)

		budget := r.categoryCap
		if remaining := r.globalCap - result.TotalItems; remaining < budget {
			budget = remaining
		}
		if budget < 0 {
			budget = 0
		}

		if len(eligible) > budget {
			// Keep the tail: most recent entries win.
			eligible = eligible[len(eligible)-budget:]
			slice.Truncated = true
			result.Truncated = append(result.Truncated, cat)
		}

		slice.Daily = eligible
		result.TotalItems += len(eligible)

		if cat == health.CategoryBloodPressure {
			slice.DiastolicDaily = matchDates(series.DiastolicDaily, eligible)
			slice.Readings = recentReadings(series.Readings, intent.Range)
		}

		if cat == health.CategoryHeartRate {
			slice.Samples = recentSamples(series.RecentSamples, intent.Range)
		}
	}

	return result
}

func filterRange(daily []health.DailyStat, r health.TimeRange) []health.DailyStat {
	var out []health.DailyStat
	for _, d := range daily {
		if r.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

// matchDates restricts the diastolic series to the dates kept in the capped
// systolic series, so the two sides of a slice always describe the same days.
func matchDates(diastolic, kept []health.DailyStat) []health.DailyStat {
	dates := make(map[int64]bool, len(kept))
	for _, d := range kept {
		dates[d.Date.Unix()] = true
	}
	var out []health.DailyStat
	for _, d := range diastolic {
		if dates[d.Date.Unix()] {
			out = append(out, d)
		}
	}
	return out
}

// recentReadings returns the newest in-range paired readings in
// chronological order (most recent last), capped at maxReadings.
func recentReadings(readings []health.Reading, r health.TimeRange) []health.Reading {
	// Input is most recent first; collect the newest in-range entries.
	var newest []health.Reading
	for _, reading := range readings {
		y, m, d := reading.Time.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, reading.Time.Location())
		if !r.Contains(day) {
			continue
		}
		newest = append(newest, reading)
		if len(newest) == maxReadings {
			break
		}
	}

	// Reverse into chronological order.
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest
}

// recentSamples returns the newest in-range raw samples in chronological
// order, capped at maxSamples.
func recentSamples(samples []health.Sample, r health.TimeRange) []health.Sample {
	// Input is most recent first; collect the newest in-range entries.
	var newest []health.Sample
	for _, s := range samples {
		if !r.Contains(s.Day()) {
			continue
		}
		newest = append(newest, s)
		if len(newest) == maxSamples {
			break
		}
	}

	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest
}
