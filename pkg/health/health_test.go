package health_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/vitals/pkg/health"
)

func TestHealth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Health Suite")
}

var _ = Describe("Category", func() {
	It("parses known categories", func() {
		cat, err := health.ParseCategory("blood_pressure")
		Expect(err).NotTo(HaveOccurred())
		Expect(cat).To(Equal(health.CategoryBloodPressure))
	})

	It("maps the steps alias to activity", func() {
		cat, err := health.ParseCategory("steps")
		Expect(err).NotTo(HaveOccurred())
		Expect(cat).To(Equal(health.CategoryActivity))
	})

	It("rejects unknown categories", func() {
		_, err := health.ParseCategory("blood_sugar")
		Expect(err).To(HaveOccurred())
	})

	It("keeps a stable iteration order", func() {
		Expect(health.Categories()).To(Equal([]health.Category{
			health.CategoryHeartRate,
			health.CategoryBloodPressure,
			health.CategoryHRV,
			health.CategoryActivity,
		}))
	})

	It("knows polarity per category", func() {
		Expect(health.CategoryHRV.HigherIsBetter()).To(BeTrue())
		Expect(health.CategoryActivity.HigherIsBetter()).To(BeTrue())
		Expect(health.CategoryHeartRate.HigherIsBetter()).To(BeFalse())
		Expect(health.CategoryBloodPressure.HigherIsBetter()).To(BeFalse())
	})
})

var _ = Describe("TimeRange", func() {
	now := time.Date(2025, 6, 15, 18, 45, 0, 0, time.UTC)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	It("truncates the end to midnight", func() {
		r := health.NewTimeRange(now, 7)
		Expect(r.End).To(Equal(midnight))
		Expect(r.Start).To(Equal(midnight.AddDate(0, 0, -7)))
	})

	It("treats zero days back as a single day", func() {
		r := health.NewTimeRange(now, 0)
		Expect(r.Start).To(Equal(r.End))
		Expect(r.Days()).To(Equal(1))
	})

	It("contains its boundary days inclusively", func() {
		r := health.NewTimeRange(now, 7)
		Expect(r.Contains(r.Start)).To(BeTrue())
		Expect(r.Contains(r.End)).To(BeTrue())
		Expect(r.Contains(r.Start.AddDate(0, 0, -1))).To(BeFalse())
		Expect(r.Contains(r.End.AddDate(0, 0, 1))).To(BeFalse())
	})
})

var _ = Describe("Sample", func() {
	It("resolves its calendar day in the timestamp location", func() {
		loc := time.FixedZone("UTC+2", 2*3600)
		s := health.Sample{
			Category:  health.CategoryHeartRate,
			Timestamp: time.Date(2025, 6, 15, 23, 30, 0, 0, loc),
		}
		Expect(s.Day()).To(Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, loc)))
	})
})
