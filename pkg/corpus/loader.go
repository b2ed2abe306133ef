// Package corpus loads the JSONL sample corpus into an immutable in-memory
// store. The store holds one snapshot (raw samples plus their aggregates) at
// a time; reload builds a fresh snapshot and swaps it atomically so in-flight
// readers keep a consistent view.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/health"
)

// record is the tolerant JSONL decode target. Unknown fields are ignored;
// HealthKit-style capitalized fields are accepted alongside the canonical
// lowercase ones.
type record struct {
	Category  string          `json:"category"`
	Timestamp string          `json:"timestamp"`
	Date      string          `json:"Date"`
	StartDate string          `json:"StartDate"`
	Value     json.RawMessage `json:"value"`
	ValueCap  json.RawMessage `json:"Value"`
	Unit      string          `json:"unit"`
	Units     string          `json:"Units"`
}

// pairedValue is the structured value form for blood pressure lines.
type pairedValue struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// filePrefixes maps corpus file name prefixes to categories for records that
// carry no category field. Longer prefixes come first so HeartRateVariability
// does not resolve as HeartRate.
var filePrefixes = []struct {
	prefix   string
	category health.Category
}{
	{"Samples_HeartRateVariability_", health.CategoryHRV},
	{"Samples_HeartRate_", health.CategoryHeartRate},
	{"Samples_BloodPressure_", health.CategoryBloodPressure},
	{"Samples_Steps_", health.CategoryActivity},
	{"Statistics_DailySteps_", health.CategoryActivity},
}

// timestampFormats are tried in order when parsing record timestamps.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// loadDir reads every JSONL file in dir. Malformed lines are counted and
// skipped, never fatal. A missing directory yields an empty sample set.
func loadDir(dir string, logger *zap.Logger) (samples []health.Sample, skipped int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("corpus directory not found, starting empty",
				zap.String("dir", dir),
			)
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("reading corpus dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isCorpusFile(name) {
			continue
		}
		if strings.Contains(name, "_Deleted_") {
			continue
		}

		fileSamples, fileSkipped, err := loadFile(filepath.Join(dir, name), fileCategory(name))
		if err != nil {
			logger.Warn("skipping unreadable corpus file",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}

		samples = append(samples, fileSamples...)
		skipped += fileSkipped
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})

	return samples, skipped, nil
}

func isCorpusFile(name string) bool {
	return strings.HasSuffix(name, ".jsonl") || strings.HasSuffix(name, ".json")
}

// fileCategory resolves a fallback category from the file name, or "" when
// the name carries no hint.
func fileCategory(name string) health.Category {
	for _, fp := range filePrefixes {
		if strings.Contains(name, fp.prefix) {
			return fp.category
		}
	}
	return ""
}

func loadFile(path string, fallback health.Category) ([]health.Sample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var samples []health.Sample
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sample, ok := parseLine([]byte(line), fallback)
		if !ok {
			skipped++
			continue
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return samples, skipped, err
	}

	return samples, skipped, nil
}

// parseLine decodes one JSONL record. Lines that are not valid JSON, name an
// unknown category, or carry an unparseable timestamp report !ok.
func parseLine(line []byte, fallback health.Category) (health.Sample, bool) {
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return health.Sample{}, false
	}

	cat := fallback
	if rec.Category != "" {
		parsed, err := health.ParseCategory(rec.Category)
		if err != nil {
			return health.Sample{}, false
		}
		cat = parsed
	}
	if cat == "" {
		return health.Sample{}, false
	}

	ts, ok := parseTimestamp(firstNonEmpty(rec.Timestamp, rec.Date, rec.StartDate))
	if !ok {
		return health.Sample{}, false
	}

	sample := health.Sample{
		Category:  cat,
		Timestamp: ts,
		Unit:      firstNonEmpty(rec.Unit, rec.Units),
	}

	raw := rec.Value
	if len(raw) == 0 {
		raw = rec.ValueCap
	}
	if len(raw) == 0 {
		return health.Sample{}, false
	}

	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		sample.Value = scalar
		return sample, true
	}

	// Some exports quote numeric values.
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		if _, convErr := fmt.Sscanf(quoted, "%f", &scalar); convErr == nil {
			sample.Value = scalar
			return sample, true
		}
		return health.Sample{}, false
	}

	var paired pairedValue
	if err := json.Unmarshal(raw, &paired); err == nil {
		if paired.Systolic == 0 && paired.Diastolic == 0 {
			return health.Sample{}, false
		}
		sample.Systolic = paired.Systolic
		sample.Diastolic = paired.Diastolic
		return sample, true
	}

	return health.Sample{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
