package summarize

import (
	"fmt"

	"github.com/papercomputeco/vitals/pkg/health"
	"github.com/papercomputeco/vitals/pkg/retrieve"
)

// Fallback builds a deterministic one-line summary from the slice's daily
// stats and trend. It is used whenever the model call cannot complete so
// the caller always receives usable text.
func Fallback(slice *retrieve.Slice) string {
	if slice == nil || slice.Empty() {
		return noDataText(sliceCategory(slice))
	}

	name := slice.Category.DisplayName()
	days := len(slice.Daily)

	switch slice.Category {
	case health.CategoryBloodPressure:
		return fallbackBloodPressure(slice, days)
	case health.CategoryActivity:
		var total float64
		for _, d := range slice.Daily {
			total += d.Sum
		}
		avg := total / float64(days)
		return fmt.Sprintf("Activity: about %.0f steps per day over %d days%s.",
			avg, days, trendClause(slice.Trend))
	default:
		avg := sliceAvg(slice.Daily)
		return fmt.Sprintf("%s: avg %.0f %s over %d days%s.",
			name, avg, slice.Category.Unit(), days, trendClause(slice.Trend))
	}
}

func fallbackBloodPressure(slice *retrieve.Slice, days int) string {
	sys := sliceAvg(slice.Daily)
	if len(slice.DiastolicDaily) == 0 {
		return fmt.Sprintf("Blood pressure: avg %.0f mmHg systolic over %d days%s.",
			sys, days, trendClause(slice.Trend))
	}
	dia := sliceAvg(slice.DiastolicDaily)
	return fmt.Sprintf("Blood pressure: avg %.0f/%.0f mmHg over %d days%s.",
		sys, dia, days, trendClause(slice.Trend))
}

func sliceAvg(daily []health.DailyStat) float64 {
	if len(daily) == 0 {
		return 0
	}
	var sum float64
	var count int
	for _, d := range daily {
		sum += d.Sum
		count += d.Count
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func trendClause(t health.Trend) string {
	switch t.Direction {
	case health.TrendUnknown, "":
		return ""
	default:
		return fmt.Sprintf(", trend %s", t.Direction)
	}
}
