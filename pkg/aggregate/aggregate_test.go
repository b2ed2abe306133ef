package aggregate_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/vitals/pkg/aggregate"
	"github.com/papercomputeco/vitals/pkg/health"
)

func TestAggregate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Aggregate Suite")
}

func hrSample(ts time.Time, value float64) health.Sample {
	return health.Sample{
		Category:  health.CategoryHeartRate,
		Timestamp: ts,
		Value:     value,
		Unit:      "bpm",
	}
}

func bpSample(ts time.Time, systolic, diastolic float64) health.Sample {
	return health.Sample{
		Category:  health.CategoryBloodPressure,
		Timestamp: ts,
		Systolic:  systolic,
		Diastolic: diastolic,
		Unit:      "mmHg",
	}
}

var _ = Describe("Build", func() {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	Describe("daily statistics", func() {
		It("computes avg, min, max, and count per day", func() {
			samples := []health.Sample{
				hrSample(day.Add(8*time.Hour), 70),
				hrSample(day.Add(12*time.Hour), 72),
				hrSample(day.Add(20*time.Hour), 75),
			}

			snap := aggregate.Build(samples)
			series := snap.Series[health.CategoryHeartRate]
			Expect(series).NotTo(BeNil())
			Expect(series.Daily).To(HaveLen(1))

			stat := series.Daily[0]
			Expect(stat.Date).To(Equal(day))
			Expect(stat.Avg).To(BeNumerically("~", 72.33, 0.01))
			Expect(stat.Min).To(Equal(70.0))
			Expect(stat.Max).To(Equal(75.0))
			Expect(stat.Count).To(Equal(3))
		})

		It("omits days without samples instead of zero-filling", func() {
			samples := []health.Sample{
				hrSample(day, 70),
				hrSample(day.AddDate(0, 0, 3), 74),
			}

			snap := aggregate.Build(samples)
			daily := snap.Series[health.CategoryHeartRate].Daily
			Expect(daily).To(HaveLen(2))
			Expect(daily[0].Date).To(Equal(day))
			Expect(daily[1].Date).To(Equal(day.AddDate(0, 0, 3)))
		})

		It("ignores non-positive values", func() {
			samples := []health.Sample{
				hrSample(day, 0),
				hrSample(day, -5),
				hrSample(day, 68),
			}

			snap := aggregate.Build(samples)
			stat := snap.Series[health.CategoryHeartRate].Daily[0]
			Expect(stat.Count).To(Equal(1))
			Expect(stat.Avg).To(Equal(68.0))
		})

		It("is deterministic across rebuilds", func() {
			samples := []health.Sample{
				hrSample(day, 70),
				hrSample(day.Add(time.Hour), 80),
				hrSample(day.AddDate(0, 0, 1), 65),
			}

			first := aggregate.Build(samples)
			second := aggregate.Build(samples)
			Expect(second.Series[health.CategoryHeartRate].Daily).To(
				Equal(first.Series[health.CategoryHeartRate].Daily))
		})

		It("leaves absent categories out of the snapshot", func() {
			snap := aggregate.Build([]health.Sample{hrSample(day, 70)})
			Expect(snap.Series).NotTo(HaveKey(health.CategoryActivity))
		})
	})

	Describe("blood pressure", func() {
		It("aggregates systolic and diastolic independently", func() {
			samples := []health.Sample{
				bpSample(day.Add(8*time.Hour), 120, 80),
				bpSample(day.Add(20*time.Hour), 124, 78),
			}

			snap := aggregate.Build(samples)
			series := snap.Series[health.CategoryBloodPressure]
			Expect(series.Daily).To(HaveLen(1))
			Expect(series.Daily[0].Avg).To(Equal(122.0))
			Expect(series.DiastolicDaily).To(HaveLen(1))
			Expect(series.DiastolicDaily[0].Avg).To(Equal(79.0))
		})

		It("keeps paired readings most recent first", func() {
			samples := []health.Sample{
				bpSample(day.Add(8*time.Hour), 120, 80),
				bpSample(day.Add(20*time.Hour), 124, 78),
			}

			snap := aggregate.Build(samples)
			readings := snap.Series[health.CategoryBloodPressure].Readings
			Expect(readings).To(HaveLen(2))
			Expect(readings[0].Systolic).To(Equal(124.0))
			Expect(readings[1].Systolic).To(Equal(120.0))
		})

		It("skips unpaired samples in the readings list", func() {
			samples := []health.Sample{
				bpSample(day, 120, 0),
				bpSample(day.Add(time.Hour), 122, 81),
			}

			snap := aggregate.Build(samples)
			series := snap.Series[health.CategoryBloodPressure]
			Expect(series.Readings).To(HaveLen(1))
			// The systolic-only sample still counts in the daily stats.
			Expect(series.Daily[0].Count).To(Equal(2))
			Expect(series.DiastolicDaily[0].Count).To(Equal(1))
		})
	})

	Describe("trends", func() {
		buildDaily := func(cat health.Category, days int, valueAt func(i int) float64) *aggregate.Snapshot {
			samples := make([]health.Sample, 0, days)
			for i := 0; i < days; i++ {
				samples = append(samples, health.Sample{
					Category:  cat,
					Timestamp: day.AddDate(0, 0, i),
					Value:     valueAt(i),
				})
			}
			return aggregate.Build(samples)
		}

		It("reports insufficient data below two days", func() {
			snap := aggregate.Build([]health.Sample{hrSample(day, 70)})
			trend := snap.Series[health.CategoryHeartRate].Trend
			Expect(trend.Direction).To(Equal(health.TrendUnknown))
		})

		It("reads stable without two full comparison windows", func() {
			snap := buildDaily(health.CategoryHeartRate, 5, func(int) float64 { return 70 })
			trend := snap.Series[health.CategoryHeartRate].Trend
			Expect(trend.Direction).To(Equal(health.TrendStable))
			Expect(trend.RecentAvg).To(Equal(70.0))
		})

		It("reads stable inside the threshold", func() {
			snap := buildDaily(health.CategoryHeartRate, 14, func(i int) float64 {
				if i < 7 {
					return 70
				}
				return 71 // +1.4%, inside the 5% band
			})
			trend := snap.Series[health.CategoryHeartRate].Trend
			Expect(trend.Direction).To(Equal(health.TrendStable))
		})

		It("reads up for a rising heart rate", func() {
			snap := buildDaily(health.CategoryHeartRate, 14, func(i int) float64 {
				if i < 7 {
					return 70
				}
				return 80
			})
			trend := snap.Series[health.CategoryHeartRate].Trend
			Expect(trend.Direction).To(Equal(health.TrendUp))
			Expect(trend.ChangePct).To(BeNumerically("~", 14.28, 0.01))
		})

		It("reads improving for rising hrv", func() {
			snap := buildDaily(health.CategoryHRV, 14, func(i int) float64 {
				if i < 7 {
					return 40
				}
				return 50
			})
			trend := snap.Series[health.CategoryHRV].Trend
			Expect(trend.Direction).To(Equal(health.TrendImproving))
		})

		It("reads declining for falling activity", func() {
			snap := buildDaily(health.CategoryActivity, 14, func(i int) float64 {
				if i < 7 {
					return 10000
				}
				return 6000
			})
			trend := snap.Series[health.CategoryActivity].Trend
			Expect(trend.Direction).To(Equal(health.TrendDeclining))
		})
	})

	Describe("Window", func() {
		It("restricts daily stats to the range", func() {
			samples := []health.Sample{
				hrSample(day, 70),
				hrSample(day.AddDate(0, 0, 5), 72),
				hrSample(day.AddDate(0, 0, 10), 74),
			}

			snap := aggregate.Build(samples)
			window := snap.Window(health.TimeRange{
				Start: day.AddDate(0, 0, 4),
				End:   day.AddDate(0, 0, 10),
			})

			Expect(window[health.CategoryHeartRate]).To(HaveLen(2))
		})

		It("omits categories with nothing in range", func() {
			snap := aggregate.Build([]health.Sample{hrSample(day, 70)})
			window := snap.Window(health.TimeRange{
				Start: day.AddDate(0, 0, 1),
				End:   day.AddDate(0, 0, 2),
			})
			Expect(window).NotTo(HaveKey(health.CategoryHeartRate))
		})
	})
})
