package health

import "time"

// Sample is one raw measurement loaded from the corpus. Samples are immutable
// once loaded; all derived structures are recomputed from them, never patched.
type Sample struct {
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`

	// Value holds the measurement for scalar metrics.
	Value float64 `json:"value,omitempty"`

	// Systolic and Diastolic hold the paired measurement for blood pressure.
	Systolic  float64 `json:"systolic,omitempty"`
	Diastolic float64 `json:"diastolic,omitempty"`

	Unit string `json:"unit,omitempty"`
}

// Day returns the sample's calendar day, truncated in the timestamp's
// location.
func (s Sample) Day() time.Time {
	y, m, d := s.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Timestamp.Location())
}
