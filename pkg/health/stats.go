package health

import "time"

// DailyStat aggregates one category's samples for one calendar day.
type DailyStat struct {
	Date  time.Time `json:"date"`
	Avg   float64   `json:"avg"`
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Sum   float64   `json:"sum"`
	Count int       `json:"count"`
}

// Reading is one paired blood pressure measurement.
type Reading struct {
	Time      time.Time `json:"time"`
	Systolic  float64   `json:"systolic"`
	Diastolic float64   `json:"diastolic"`
}

// Direction classifies a metric's recent movement.
type Direction string

const (
	TrendStable    Direction = "stable"
	TrendUp        Direction = "up"
	TrendDown      Direction = "down"
	TrendImproving Direction = "improving"
	TrendDeclining Direction = "declining"

	// TrendUnknown marks categories with too little data to compare windows.
	TrendUnknown Direction = "insufficient_data"
)

// Trend describes a category's direction of change, comparing the most recent
// aggregation window against the prior window of equal length.
type Trend struct {
	Direction Direction `json:"direction"`
	ChangePct float64   `json:"change_pct"`
	RecentAvg float64   `json:"recent_avg"`
	PriorAvg  float64   `json:"prior_avg"`
}

// TimeRange is an inclusive calendar-day range. Start and End are midnight
// timestamps in the data's normalized location; Start never exceeds End.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange builds a range ending on the day of end and reaching daysBack
// days into the past. daysBack of zero yields the single day of end.
func NewTimeRange(end time.Time, daysBack int) TimeRange {
	y, m, d := end.Date()
	endDay := time.Date(y, m, d, 0, 0, 0, 0, end.Location())
	return TimeRange{
		Start: endDay.AddDate(0, 0, -daysBack),
		End:   endDay,
	}
}

// Contains reports whether the given day falls inside the range.
func (r TimeRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Days returns the number of calendar days covered, inclusive.
func (r TimeRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}
