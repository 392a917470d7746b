package report

import (
	"math"
	"strconv"
)

// Table is a rectangular result ready for CSV export.
type Table struct {
	Name   string // output file name, e.g. "exit_frag_analysis.csv"
	Header []string
	Rows   [][]string
}

// Column returns the index of the named column, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Records returns each row as a column-name to value map.
func (t Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

// Round2 rounds v half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Float formats v rounded to two decimals in its shortest form ("12.5", "0").
func Float(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', -1, 64)
}

// Int formats an integer cell.
func Int(v int) string {
	return strconv.Itoa(v)
}
