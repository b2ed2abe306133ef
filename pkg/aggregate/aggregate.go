// Package aggregate converts raw samples into per-category, per-day
// statistics with trend classification. Output is deterministic: rebuilding
// from the same samples yields identical snapshots.
package aggregate

import (
	"sort"
	"time"

	"github.com/papercomputeco/vitals/pkg/health"
)

const (
	// maxRecentSamples bounds the raw heart rate samples retained per snapshot.
	maxRecentSamples = 50

	// maxReadings bounds the paired blood pressure readings retained.
	maxReadings = 100
)

// Series holds everything derived for one category.
type Series struct {
	Category health.Category

	// Daily is the per-day stats in chronological order. For blood
	// pressure this is the systolic series.
	Daily []health.DailyStat

	// DiastolicDaily is the per-day diastolic stats, blood pressure only.
	DiastolicDaily []health.DailyStat

	// Readings are paired blood pressure measurements, most recent first.
	Readings []health.Reading

	// RecentSamples are the newest raw samples, most recent first.
	// Retained for heart rate only.
	RecentSamples []health.Sample

	Trend          health.Trend
	DiastolicTrend health.Trend
}

// Latest returns the most recent daily stat, or nil when the series is empty.
func (s *Series) Latest() *health.DailyStat {
	if len(s.Daily) == 0 {
		return nil
	}
	return &s.Daily[len(s.Daily)-1]
}

// Snapshot is one immutable aggregation of the whole corpus. A snapshot is
// replaced wholesale on reload, never mutated, so concurrent readers always
// see a consistent view.
type Snapshot struct {
	BuiltAt time.Time
	Series  map[health.Category]*Series
}

// Build aggregates raw samples into a fresh snapshot. Days without samples
// are absent from the daily series rather than zero-filled.
func Build(samples []health.Sample) *Snapshot {
	byCategory := make(map[health.Category][]health.Sample)
	for _, s := range samples {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	snap := &Snapshot{
		BuiltAt: time.Now(),
		Series:  make(map[health.Category]*Series),
	}

	for _, cat := range health.Categories() {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		if cat == health.CategoryBloodPressure {
			snap.Series[cat] = buildBloodPressure(group)
			continue
		}
		snap.Series[cat] = buildScalar(cat, group)
	}

	return snap
}

// Window returns the daily stats for every category restricted to the given
// range, keyed by category. The dashboard reads this directly; it is not
// subject to the retrieval caps.
func (snap *Snapshot) Window(r health.TimeRange) map[health.Category][]health.DailyStat {
	out := make(map[health.Category][]health.DailyStat)
	for cat, series := range snap.Series {
		var stats []health.DailyStat
		for _, d := range series.Daily {
			if r.Contains(d.Date) {
				stats = append(stats, d)
			}
		}
		if len(stats) > 0 {
			out[cat] = stats
		}
	}
	return out
}

func buildScalar(cat health.Category, samples []health.Sample) *Series {
	byDay := make(map[time.Time][]float64)
	for _, s := range samples {
		if s.Value <= 0 {
			continue
		}
		byDay[s.Day()] = append(byDay[s.Day()], s.Value)
	}

	series := &Series{
		Category: cat,
		Daily:    dailyStats(byDay),
	}
	series.Trend = deriveTrend(cat, series.Daily)

	if cat == health.CategoryHeartRate {
		series.RecentSamples = recentSamples(samples)
	}

	return series
}

func buildBloodPressure(samples []health.Sample) *Series {
	systolicByDay := make(map[time.Time][]float64)
	diastolicByDay := make(map[time.Time][]float64)
	var readings []health.Reading

	for _, s := range samples {
		if s.Systolic > 0 {
			systolicByDay[s.Day()] = append(systolicByDay[s.Day()], s.Systolic)
		}
		if s.Diastolic > 0 {
			diastolicByDay[s.Day()] = append(diastolicByDay[s.Day()], s.Diastolic)
		}
		if s.Systolic > 0 && s.Diastolic > 0 {
			readings = append(readings, health.Reading{
				Time:      s.Timestamp,
				Systolic:  s.Systolic,
				Diastolic: s.Diastolic,
			})
		}
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Time.After(readings[j].Time)
	})
	if len(readings) > maxReadings {
		readings = readings[:maxReadings]
	}

	series := &Series{
		Category:       health.CategoryBloodPressure,
		Daily:          dailyStats(systolicByDay),
		DiastolicDaily: dailyStats(diastolicByDay),
		Readings:       readings,
	}
	series.Trend = deriveTrend(health.CategoryBloodPressure, series.Daily)
	series.DiastolicTrend = deriveTrend(health.CategoryBloodPressure, series.DiastolicDaily)

	return series
}

// dailyStats computes per-day aggregates from grouped values, sorted by date.
func dailyStats(byDay map[time.Time][]float64) []health.DailyStat {
	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	stats := make([]health.DailyStat, 0, len(days))
	for _, day := range days {
		values := byDay[day]
		stat := health.DailyStat{
			Date:  day,
			Min:   values[0],
			Max:   values[0],
			Count: len(values),
		}
		for _, v := range values {
			stat.Sum += v
			if v < stat.Min {
				stat.Min = v
			}
			if v > stat.Max {
				stat.Max = v
			}
		}
		stat.Avg = stat.Sum / float64(stat.Count)
		stats = append(stats, stat)
	}

	return stats
}

func recentSamples(samples []health.Sample) []health.Sample {
	recent := make([]health.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Value > 0 {
			recent = append(recent, s)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > maxRecentSamples {
		recent = recent[:maxRecentSamples]
	}
	return recent
}
