// Package health defines the core domain types shared across the vitals
// pipeline: metric categories, raw samples, daily aggregates, trends, and
// time ranges.
package health

import "fmt"

// Category identifies a class of health metric.
type Category string

const (
	CategoryHeartRate     Category = "heart_rate"
	CategoryBloodPressure Category = "blood_pressure"
	CategoryHRV           Category = "hrv"
	CategoryActivity      Category = "activity"
)

// Categories returns all known categories in stable order. Cap enforcement
// and context assembly iterate in this order, so it must not change between
// calls.
func Categories() []Category {
	return []Category{
		CategoryHeartRate,
		CategoryBloodPressure,
		CategoryHRV,
		CategoryActivity,
	}
}

// ParseCategory validates a category string from corpus records or API input.
// "steps" is accepted as an alias for activity, matching how step-count
// exports label their records.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryHeartRate, CategoryBloodPressure, CategoryHRV, CategoryActivity:
		return Category(s), nil
	case "steps":
		return CategoryActivity, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// DisplayName returns the human-readable name used in rendered context blocks.
func (c Category) DisplayName() string {
	switch c {
	case CategoryHeartRate:
		return "Heart Rate"
	case CategoryBloodPressure:
		return "Blood Pressure"
	case CategoryHRV:
		return "Heart Rate Variability (HRV)"
	case CategoryActivity:
		return "Activity"
	}
	return string(c)
}

// Unit returns the default unit for the category when a sample carries none.
func (c Category) Unit() string {
	switch c {
	case CategoryHeartRate:
		return "bpm"
	case CategoryBloodPressure:
		return "mmHg"
	case CategoryHRV:
		return "ms"
	case CategoryActivity:
		return "steps"
	}
	return ""
}

// HigherIsBetter reports whether the category has a known polarity where an
// upward trend is an improvement. Categories without a clear polarity report
// neutral up/down directions instead of improving/declining.
func (c Category) HigherIsBetter() bool {
	switch c {
	case CategoryHRV, CategoryActivity:
		return true
	}
	return false
}
