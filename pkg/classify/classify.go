// Package classify maps free-text queries to metric categories and a
// resolved time range. Classification is a pure function of the query text
// and the caller-supplied clock: no I/O, no failure mode. A query that
// matches nothing is a normal "no relevant health data" result, not an error.
package classify

import (
	"strings"
	"time"

	"github.com/papercomputeco/vitals/pkg/health"
)

// Intent is the classifier's output for one query.
type Intent struct {
	// Categories holds the matched categories in the stable order of
	// health.Categories. Empty means the query needs no health data.
	Categories []health.Category

	// Range is the resolved inclusive day range.
	Range health.TimeRange

	// WantsTrend biases summary phrasing toward trend language. It never
	// changes retrieval volume.
	WantsTrend bool
}

// Matched reports whether the intent covers the given category.
func (in Intent) Matched(cat health.Category) bool {
	for _, c := range in.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// categoryKeywords is the fixed per-category keyword table. Loaded once,
// never mutated at runtime.
var categoryKeywords = map[health.Category][]string{
	health.CategoryHeartRate: {
		"heart rate", "heartrate", "bpm", "pulse", "heartbeat",
		"beats per minute", "resting heart rate", "heart rhythm",
		"cardiac rate",
	},
	health.CategoryBloodPressure: {
		"blood pressure", "systolic", "diastolic", "hypertension",
		"hypotension", "pressure reading", "mmhg", "bp",
	},
	health.CategoryHRV: {
		"heart rate variability", "hrv", "heart variability",
		"cardiac variability",
	},
	health.CategoryActivity: {
		"steps", "walking", "activity", "exercise", "movement",
		"physical activity", "daily steps", "step count",
	},
}

var trendKeywords = []string{
	"trend", "trending", "change", "changes", "changing", "improve",
	"improving", "improvement", "worse", "worsening", "better",
	"declining", "increasing", "decreasing", "pattern", "patterns",
}

// Classify resolves a query into an Intent. now anchors relative time
// phrases and supplies the data's normalized location.
func Classify(query string, now time.Time) Intent {
	lower := strings.ToLower(query)

	intent := Intent{
		Range:      resolveTimeRange(lower, now),
		WantsTrend: containsAny(lower, trendKeywords),
	}

	for _, cat := range health.Categories() {
		if containsAny(lower, categoryKeywords[cat]) {
			intent.Categories = append(intent.Categories, cat)
		}
	}

	return intent
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
