package classify_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/vitals/pkg/classify"
	"github.com/papercomputeco/vitals/pkg/health"
)

func TestClassify(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Classify Suite")
}

var _ = Describe("Classify", func() {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	Describe("category matching", func() {
		It("matches heart rate keywords", func() {
			intent := classify.Classify("How has my heart rate been?", now)
			Expect(intent.Categories).To(Equal([]health.Category{health.CategoryHeartRate}))
		})

		It("matches blood pressure abbreviations", func() {
			intent := classify.Classify("what's my BP looking like", now)
			Expect(intent.Categories).To(Equal([]health.Category{health.CategoryBloodPressure}))
		})

		It("matches hrv without matching heart rate", func() {
			intent := classify.Classify("show my HRV", now)
			Expect(intent.Categories).To(Equal([]health.Category{health.CategoryHRV}))
		})

		It("matches multiple categories in stable order", func() {
			intent := classify.Classify("compare my steps and my pulse", now)
			Expect(intent.Categories).To(Equal([]health.Category{
				health.CategoryHeartRate,
				health.CategoryActivity,
			}))
		})

		It("matches nothing for unrelated queries", func() {
			intent := classify.Classify("Tell me a joke", now)
			Expect(intent.Categories).To(BeEmpty())
		})

		It("is case insensitive", func() {
			intent := classify.Classify("MY BLOOD PRESSURE", now)
			Expect(intent.Categories).To(Equal([]health.Category{health.CategoryBloodPressure}))
		})
	})

	Describe("time range resolution", func() {
		It("defaults to the past seven days", func() {
			intent := classify.Classify("heart rate", now)
			Expect(intent.Range.End).To(Equal(midnight))
			Expect(intent.Range.Start).To(Equal(midnight.AddDate(0, 0, -7)))
		})

		It("resolves today as a single day", func() {
			intent := classify.Classify("heart rate today", now)
			Expect(intent.Range.Start).To(Equal(midnight))
			Expect(intent.Range.End).To(Equal(midnight))
		})

		It("resolves yesterday as exactly that day", func() {
			intent := classify.Classify("my steps yesterday", now)
			yesterday := midnight.AddDate(0, 0, -1)
			Expect(intent.Range.Start).To(Equal(yesterday))
			Expect(intent.Range.End).To(Equal(yesterday))
		})

		It("resolves this week to seven days back", func() {
			intent := classify.Classify("hrv this week", now)
			Expect(intent.Range.Start).To(Equal(midnight.AddDate(0, 0, -7)))
			Expect(intent.Range.End).To(Equal(midnight))
		})

		It("resolves last week to fourteen days back", func() {
			intent := classify.Classify("hrv last week", now)
			Expect(intent.Range.Start).To(Equal(midnight.AddDate(0, 0, -14)))
		})

		It("resolves last month to thirty days back", func() {
			intent := classify.Classify("bp last month", now)
			Expect(intent.Range.Start).To(Equal(midnight.AddDate(0, 0, -30)))
		})

		It("resolves explicit day counts", func() {
			intent := classify.Classify("steps over the last 10 days", now)
			Expect(intent.Range.Start).To(Equal(midnight.AddDate(0, 0, -10)))
		})

		It("resolves explicit week counts", func() {
			intent := classify.Classify("steps over the last 3 weeks", now)
			Expect(intent.Range.Start).To(Equal(midnight.AddDate(0, 0, -21)))
		})
	})

	Describe("trend detection", func() {
		It("flags trend-seeking queries", func() {
			intent := classify.Classify("is my heart rate improving?", now)
			Expect(intent.WantsTrend).To(BeTrue())
		})

		It("leaves plain queries unflagged", func() {
			intent := classify.Classify("heart rate this week", now)
			Expect(intent.WantsTrend).To(BeFalse())
		})
	})

	Describe("Matched", func() {
		It("reports covered categories", func() {
			intent := classify.Classify("heart rate", now)
			Expect(intent.Matched(health.CategoryHeartRate)).To(BeTrue())
			Expect(intent.Matched(health.CategoryActivity)).To(BeFalse())
		})
	})
})
