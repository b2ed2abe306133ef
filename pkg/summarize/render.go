package summarize

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/vitals/pkg/health"
	"github.com/papercomputeco/vitals/pkg/retrieve"
)

const dayFormat = "2006-01-02"

// RenderSlice formats a retrieved slice as compact text suitable for a
// model prompt. BP days pair systolic and diastolic averages on one line;
// scalar categories get avg/min/max per day. Activity reports the daily
// step total rather than an average.
func RenderSlice(slice *retrieve.Slice, wantsTrend bool) string {
	var b strings.Builder

	unit := slice.Category.Unit()
	fmt.Fprintf(&b, "%s (%s):\n", slice.Category.DisplayName(), unit)

	switch slice.Category {
	case health.CategoryBloodPressure:
		renderBloodPressure(&b, slice)
	case health.CategoryActivity:
		for _, d := range slice.Daily {
			fmt.Fprintf(&b, "  %s: %.0f steps across %d entries\n",
				d.Date.Format(dayFormat), d.Sum, d.Count)
		}
	default:
		for _, d := range slice.Daily {
			fmt.Fprintf(&b, "  %s: avg %.1f %s (min %.1f, max %.1f), %d readings\n",
				d.Date.Format(dayFormat), d.Avg, unit, d.Min, d.Max, d.Count)
		}
		if len(slice.Samples) > 0 {
			b.WriteString("  recent samples:\n")
			for _, s := range slice.Samples {
				fmt.Fprintf(&b, "    %s: %.0f %s\n",
					s.Timestamp.Format("2006-01-02 15:04"), s.Value, unit)
			}
		}
	}

	if slice.Truncated {
		b.WriteString("  (older entries omitted)\n")
	}

	if wantsTrend {
		renderTrend(&b, slice)
	}

	return b.String()
}

func renderBloodPressure(b *strings.Builder, slice *retrieve.Slice) {
	diastolicByDay := make(map[string]health.DailyStat, len(slice.DiastolicDaily))
	for _, d := range slice.DiastolicDaily {
		diastolicByDay[d.Date.Format(dayFormat)] = d
	}

	for _, sys := range slice.Daily {
		key := sys.Date.Format(dayFormat)
		if dia, ok := diastolicByDay[key]; ok {
			fmt.Fprintf(b, "  %s: %.0f/%.0f mmHg avg, %d readings\n",
				key, sys.Avg, dia.Avg, sys.Count)
		} else {
			fmt.Fprintf(b, "  %s: %.0f mmHg systolic avg, %d readings\n",
				key, sys.Avg, sys.Count)
		}
	}

	if len(slice.Readings) > 0 {
		b.WriteString("  recent readings:\n")
		for _, r := range slice.Readings {
			fmt.Fprintf(b, "    %s: %.0f/%.0f\n",
				r.Time.Format("2006-01-02 15:04"), r.Systolic, r.Diastolic)
		}
	}
}

func renderTrend(b *strings.Builder, slice *retrieve.Slice) {
	writeTrendLine(b, slice.Category.DisplayName(), slice.Trend)
	if slice.Category == health.CategoryBloodPressure {
		writeTrendLine(b, "Diastolic", slice.DiastolicTrend)
	}
}

func writeTrendLine(b *strings.Builder, label string, t health.Trend) {
	switch t.Direction {
	case health.TrendUnknown, "":
		return
	case health.TrendStable:
		fmt.Fprintf(b, "  %s trend: stable (recent avg %.1f)\n", label, t.RecentAvg)
	default:
		fmt.Fprintf(b, "  %s trend: %s (%+.1f%% vs prior period, recent avg %.1f)\n",
			label, t.Direction, t.ChangePct, t.RecentAvg)
	}
}
