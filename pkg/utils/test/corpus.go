package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScalarLine renders one JSONL corpus line for a scalar metric sample.
func ScalarLine(category string, ts time.Time, value float64, unit string) string {
	return fmt.Sprintf(`{"category":%q,"timestamp":%q,"value":%g,"unit":%q}`,
		category, ts.Format(time.RFC3339), value, unit)
}

// PairedLine renders one JSONL corpus line for a blood pressure sample.
func PairedLine(ts time.Time, systolic, diastolic float64) string {
	return fmt.Sprintf(`{"category":"blood_pressure","timestamp":%q,"value":{"systolic":%g,"diastolic":%g},"unit":"mmHg"}`,
		ts.Format(time.RFC3339), systolic, diastolic)
}

// WriteCorpusFile writes the given lines as one JSONL file under dir.
func WriteCorpusFile(dir, name string, lines ...string) (string, error) {
	path := filepath.Join(dir, name)
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// DailySeries renders one scalar line per day, most recent last, ending on
// end and reaching days-1 days into the past. Values cycle through vals.
func DailySeries(category string, end time.Time, days int, vals []float64, unit string) []string {
	lines := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		ts := end.AddDate(0, 0, -i)
		lines = append(lines, ScalarLine(category, ts, vals[(days-1-i)%len(vals)], unit))
	}
	return lines
}
