package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/papercomputeco/vitals/pkg/health"
)

// defaultDaysBack applies when a query names no time range.
const defaultDaysBack = 7

// timePhrase resolves a fixed relative phrase to a number of days back.
// Phrases are checked in order, so more specific phrases come first.
type timePhrase struct {
	phrase    string
	daysBack  int
	singleDay bool
}

var timePhrases = []timePhrase{
	// "yesterday" must come before "today", which it contains.
	{phrase: "yesterday", daysBack: 1, singleDay: true},
	{phrase: "today", daysBack: 0},
	{phrase: "this week", daysBack: 7},
	{phrase: "past week", daysBack: 7},
	{phrase: "last week", daysBack: 14},
	{phrase: "this month", daysBack: 30},
	{phrase: "last month", daysBack: 30},
	{phrase: "recent", daysBack: 7},
}

var (
	lastNDaysRe  = regexp.MustCompile(`last (\d+) days?`)
	lastNWeeksRe = regexp.MustCompile(`last (\d+) weeks?`)
)

// resolveTimeRange maps relative time phrases in the lowercased query to an
// inclusive day range. The range ends on the current day except for
// "yesterday", which yields exactly that day.
func resolveTimeRange(lower string, now time.Time) health.TimeRange {
	for _, tp := range timePhrases {
		if !strings.Contains(lower, tp.phrase) {
			continue
		}
		if tp.singleDay {
			return health.NewTimeRange(now.AddDate(0, 0, -tp.daysBack), 0)
		}
		return health.NewTimeRange(now, tp.daysBack)
	}

	if m := lastNDaysRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return health.NewTimeRange(now, n)
		}
	}
	if m := lastNWeeksRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return health.NewTimeRange(now, n*7)
		}
	}

	return health.NewTimeRange(now, defaultDaysBack)
}
