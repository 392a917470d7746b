package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV writes t to dir/t.Name, replacing any existing file, and returns
// the path written.
func WriteCSV(dir string, t Table) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, t.Name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return "", fmt.Errorf("write csv rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv: %w", err)
	}
	return path, nil
}

// ReadCSV loads a CSV file with a header row.
func ReadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("read csv %s: empty file", path)
	}
	return Table{Name: filepath.Base(path), Header: records[0], Rows: records[1:]}, nil
}

// RequireColumns returns an error naming every column of want missing from t.
func RequireColumns(t Table, want ...string) error {
	var missing []string
	for _, c := range want {
		if t.Column(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing columns %v", t.Name, missing)
	}
	return nil
}
