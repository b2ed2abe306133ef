package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/corpus"
	"github.com/papercomputeco/vitals/pkg/health"
	"github.com/papercomputeco/vitals/pkg/pipeline"
	"github.com/papercomputeco/vitals/pkg/retrieve"
	"github.com/papercomputeco/vitals/pkg/summarize"
	testutils "github.com/papercomputeco/vitals/pkg/utils/test"
)

func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline Suite")
}

var _ = Describe("Orchestrator", func() {
	var tmpDir string
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	newOrchestrator := func(call summarize.CallFunc, deadline time.Duration) *pipeline.Orchestrator {
		store, err := corpus.Open(tmpDir, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		return pipeline.New(pipeline.Options{
			Store:      store,
			Retriever:  retrieve.New(100, 10),
			Summarizer: summarize.New(call, zap.NewNop()),
			Deadline:   deadline,
			Logger:     zap.NewNop(),
		})
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "pipeline-test-*")
		Expect(err).NotTo(HaveOccurred())

		lines := testutils.DailySeries("heart_rate", now, 5, []float64{70, 72, 75}, "bpm")
		_, err = testutils.WriteCorpusFile(tmpDir, "hr.jsonl", lines...)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("returns an empty result for unrelated queries", func() {
		call := func(context.Context, string) (string, error) {
			Fail("summarizer must not run for unrelated queries")
			return "", nil
		}
		orch := newOrchestrator(call, time.Second)

		result := orch.Process(context.Background(), "Tell me a joke", now)
		Expect(result.Categories).To(BeEmpty())
		Expect(result.ContextText).To(BeEmpty())
		Expect(result.Summaries).To(BeEmpty())
		Expect(result.RequestID).NotTo(BeEmpty())
	})

	It("assembles model summaries into the context text", func() {
		call := func(_ context.Context, prompt string) (string, error) {
			return fmt.Sprintf("summary of %d chars", len(prompt)), nil
		}
		orch := newOrchestrator(call, time.Second)

		result := orch.Process(context.Background(), "how's my heart rate this week?", now)
		Expect(result.Categories).To(Equal([]health.Category{health.CategoryHeartRate}))
		Expect(result.Summaries).To(HaveLen(1))
		Expect(result.Summaries[0].Status).To(Equal(summarize.StatusOK))
		Expect(result.ContextText).To(ContainSubstring("summary of"))
		Expect(result.DegradedCategories).To(BeEmpty())
	})

	It("carries the no-data fallback text for matched categories without data", func() {
		call := func(_ context.Context, _ string) (string, error) {
			return "hr looks fine", nil
		}
		orch := newOrchestrator(call, time.Second)

		result := orch.Process(context.Background(), "compare my heart rate and my steps", now)
		Expect(result.Categories).To(Equal([]health.Category{
			health.CategoryHeartRate,
			health.CategoryActivity,
		}))

		statuses := map[health.Category]summarize.Status{}
		for _, s := range result.Summaries {
			statuses[s.Category] = s.Status
		}
		Expect(statuses[health.CategoryHeartRate]).To(Equal(summarize.StatusOK))
		Expect(statuses[health.CategoryActivity]).To(Equal(summarize.StatusNoData))

		Expect(result.ContextText).To(Equal(
			"hr looks fine\n\nNo activity data available for the requested period."))
		Expect(result.DegradedCategories).To(BeEmpty())
	})

	It("states no data is available when a matched category has nothing in range", func() {
		call := func(_ context.Context, _ string) (string, error) {
			Fail("summarizer must not run for empty slices")
			return "", nil
		}
		orch := newOrchestrator(call, time.Second)

		result := orch.Process(context.Background(), "how are my steps this week?", now)
		Expect(result.Categories).To(Equal([]health.Category{health.CategoryActivity}))
		Expect(result.Summaries).To(HaveLen(1))
		Expect(result.Summaries[0].Status).To(Equal(summarize.StatusNoData))
		Expect(result.ContextText).To(Equal(
			"No activity data available for the requested period."))
		Expect(result.DegradedCategories).To(BeEmpty())
	})

	It("falls back to templates when the summarizer misses the deadline", func() {
		call := func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}
		orch := newOrchestrator(call, 50*time.Millisecond)

		start := time.Now()
		result := orch.Process(context.Background(), "heart rate this week", now)
		Expect(time.Since(start)).To(BeNumerically("<", 5*time.Second))

		Expect(result.Summaries).To(HaveLen(1))
		Expect(result.Summaries[0].Status).To(Equal(summarize.StatusTimedOut))
		Expect(result.Summaries[0].Text).To(ContainSubstring("Heart Rate: avg"))
		Expect(result.DegradedCategories).To(Equal([]health.Category{health.CategoryHeartRate}))
		Expect(result.ContextText).NotTo(BeEmpty())
	})

	It("discards summarizers that ignore the deadline entirely", func() {
		block := make(chan struct{})
		DeferCleanup(func() { close(block) })
		call := func(context.Context, string) (string, error) {
			<-block
			return "too late", nil
		}
		orch := newOrchestrator(call, 50*time.Millisecond)

		result := orch.Process(context.Background(), "heart rate this week", now)
		Expect(result.Summaries[0].Status).To(Equal(summarize.StatusTimedOut))
		Expect(result.ContextText).NotTo(ContainSubstring("too late"))
	})

	It("propagates truncation metadata", func() {
		lines := testutils.DailySeries("heart_rate", now, 30, []float64{70}, "bpm")
		_, err := testutils.WriteCorpusFile(tmpDir, "hr_month.jsonl", lines...)
		Expect(err).NotTo(HaveOccurred())

		call := func(context.Context, string) (string, error) {
			return "ok", nil
		}
		orch := newOrchestrator(call, time.Second)

		result := orch.Process(context.Background(), "heart rate last 30 days", now)
		Expect(result.TruncatedCategories).To(Equal([]health.Category{health.CategoryHeartRate}))
		Expect(result.TotalItems).To(Equal(10))
	})
})

var _ = Describe("Dashboard", func() {
	It("returns daily stats for the trailing window", func() {
		tmpDir, err := os.MkdirTemp("", "pipeline-dash-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		lines := testutils.DailySeries("hrv", now, 5, []float64{45, 50}, "ms")
		_, err = testutils.WriteCorpusFile(tmpDir, "hrv.jsonl", lines...)
		Expect(err).NotTo(HaveOccurred())

		store, err := corpus.Open(tmpDir, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		orch := pipeline.New(pipeline.Options{
			Store:  store,
			Logger: zap.NewNop(),
		})

		stats := orch.Dashboard(7, now)
		Expect(stats[health.CategoryHRV]).To(HaveLen(5))
	})
})
