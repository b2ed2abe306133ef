package summarize_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/health"
	"github.com/papercomputeco/vitals/pkg/retrieve"
	"github.com/papercomputeco/vitals/pkg/summarize"
)

func TestSummarize(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summarize Suite")
}

func hrSlice() *retrieve.Slice {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return &retrieve.Slice{
		Category: health.CategoryHeartRate,
		Daily: []health.DailyStat{
			{Date: day, Avg: 72, Min: 65, Max: 110, Sum: 720, Count: 10},
			{Date: day.AddDate(0, 0, 1), Avg: 74, Min: 62, Max: 105, Sum: 370, Count: 5},
		},
		Trend: health.Trend{Direction: health.TrendStable, RecentAvg: 72.7},
	}
}

var _ = Describe("Summarizer", func() {
	It("returns model output verbatim on success", func() {
		call := func(_ context.Context, prompt string) (string, error) {
			Expect(prompt).To(ContainSubstring("Heart Rate"))
			return "Your heart rate averaged 73 bpm.", nil
		}
		s := summarize.New(call, zap.NewNop())

		summary := s.Summarize(context.Background(), hrSlice(), false)
		Expect(summary.Status).To(Equal(summarize.StatusOK))
		Expect(summary.Text).To(Equal("Your heart rate averaged 73 bpm."))
		Expect(summary.Degraded()).To(BeFalse())
	})

	It("never calls the model for an empty slice", func() {
		called := false
		call := func(context.Context, string) (string, error) {
			called = true
			return "", nil
		}
		s := summarize.New(call, zap.NewNop())

		summary := s.Summarize(context.Background(), &retrieve.Slice{
			Category: health.CategoryHRV,
		}, false)
		Expect(called).To(BeFalse())
		Expect(summary.Status).To(Equal(summarize.StatusNoData))
		Expect(summary.Text).To(ContainSubstring("No heart rate variability"))
	})

	It("degrades to the template fallback on call errors", func() {
		call := func(context.Context, string) (string, error) {
			return "", errors.New("upstream exploded")
		}
		s := summarize.New(call, zap.NewNop())

		summary := s.Summarize(context.Background(), hrSlice(), false)
		Expect(summary.Status).To(Equal(summarize.StatusErrored))
		Expect(summary.Text).To(ContainSubstring("Heart Rate: avg"))
		Expect(summary.Degraded()).To(BeTrue())
	})

	It("marks deadline expiry as timed out", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		call := func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		}
		s := summarize.New(call, zap.NewNop())

		summary := s.Summarize(ctx, hrSlice(), false)
		Expect(summary.Status).To(Equal(summarize.StatusTimedOut))
		Expect(summary.Text).NotTo(BeEmpty())
	})

	It("treats blank model output as an error", func() {
		call := func(context.Context, string) (string, error) {
			return "   \n", nil
		}
		s := summarize.New(call, zap.NewNop())

		summary := s.Summarize(context.Background(), hrSlice(), false)
		Expect(summary.Status).To(Equal(summarize.StatusErrored))
		Expect(summary.Text).To(ContainSubstring("Heart Rate"))
	})
})

var _ = Describe("RenderSlice", func() {
	It("renders daily scalar stats with units", func() {
		text := summarize.RenderSlice(hrSlice(), false)
		Expect(text).To(ContainSubstring("Heart Rate (bpm):"))
		Expect(text).To(ContainSubstring("2025-06-10: avg 72.0 bpm (min 65.0, max 110.0), 10 readings"))
	})

	It("renders activity as daily step totals", func() {
		slice := &retrieve.Slice{
			Category: health.CategoryActivity,
			Daily: []health.DailyStat{
				{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), Sum: 8200, Count: 4},
			},
		}
		text := summarize.RenderSlice(slice, false)
		Expect(text).To(ContainSubstring("8200 steps across 4 entries"))
	})

	It("pairs blood pressure averages on one line", func() {
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		slice := &retrieve.Slice{
			Category:       health.CategoryBloodPressure,
			Daily:          []health.DailyStat{{Date: day, Avg: 121, Count: 2}},
			DiastolicDaily: []health.DailyStat{{Date: day, Avg: 79, Count: 2}},
		}
		text := summarize.RenderSlice(slice, false)
		Expect(text).To(ContainSubstring("2025-06-10: 121/79 mmHg avg, 2 readings"))
	})

	It("appends trend lines only when asked", func() {
		withTrend := summarize.RenderSlice(hrSlice(), true)
		Expect(withTrend).To(ContainSubstring("trend: stable"))

		without := summarize.RenderSlice(hrSlice(), false)
		Expect(without).NotTo(ContainSubstring("trend"))
	})

	It("notes truncation", func() {
		slice := hrSlice()
		slice.Truncated = true
		Expect(summarize.RenderSlice(slice, false)).To(ContainSubstring("older entries omitted"))
	})
})

var _ = Describe("Fallback", func() {
	It("summarizes scalar slices from daily stats", func() {
		text := summarize.Fallback(hrSlice())
		Expect(text).To(Equal("Heart Rate: avg 73 bpm over 2 days, trend stable."))
	})

	It("summarizes blood pressure with both sides", func() {
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		slice := &retrieve.Slice{
			Category:       health.CategoryBloodPressure,
			Daily:          []health.DailyStat{{Date: day, Avg: 121, Sum: 242, Count: 2}},
			DiastolicDaily: []health.DailyStat{{Date: day, Avg: 79, Sum: 158, Count: 2}},
			Trend:          health.Trend{Direction: health.TrendUnknown},
		}
		Expect(summarize.Fallback(slice)).To(Equal("Blood pressure: avg 121/79 mmHg over 1 days."))
	})

	It("reports no data for empty slices", func() {
		text := summarize.Fallback(&retrieve.Slice{Category: health.CategoryActivity})
		Expect(text).To(Equal("No activity data available for the requested period."))
	})
})
