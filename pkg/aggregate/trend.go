package aggregate

import "github.com/papercomputeco/vitals/pkg/health"

const (
	// trendWindow is the number of daily entries compared per window.
	trendWindow = 7

	// stableThresholdPct is the |change| below which a trend reads stable.
	stableThresholdPct = 5.0
)

// deriveTrend compares the most recent trendWindow daily entries against the
// prior window of equal length. Fewer than two entries is insufficient data;
// fewer than two full windows reads stable.
func deriveTrend(cat health.Category, daily []health.DailyStat) health.Trend {
	if len(daily) < 2 {
		return health.Trend{Direction: health.TrendUnknown}
	}

	recent := daily
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	recentAvg := windowAvg(recent)

	if len(daily) < 2*trendWindow {
		return health.Trend{
			Direction: health.TrendStable,
			RecentAvg: recentAvg,
		}
	}

	prior := daily[len(daily)-2*trendWindow : len(daily)-trendWindow]
	priorAvg := windowAvg(prior)

	trend := health.Trend{
		RecentAvg: recentAvg,
		PriorAvg:  priorAvg,
	}

	if priorAvg == 0 {
		trend.Direction = health.TrendStable
		return trend
	}

	trend.ChangePct = (recentAvg - priorAvg) / priorAvg * 100

	switch {
	case trend.ChangePct > -stableThresholdPct && trend.ChangePct < stableThresholdPct:
		trend.Direction = health.TrendStable
	case trend.ChangePct > 0:
		trend.Direction = health.TrendUp
		if cat.HigherIsBetter() {
			trend.Direction = health.TrendImproving
		}
	default:
		trend.Direction = health.TrendDown
		if cat.HigherIsBetter() {
			trend.Direction = health.TrendDeclining
		}
	}

	return trend
}

func windowAvg(stats []health.DailyStat) float64 {
	if len(stats) == 0 {
		return 0
	}
	var sum float64
	for _, s := range stats {
		sum += s.Avg
	}
	return sum / float64(len(stats))
}
