package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFloat(t *testing.T) {
	cases := map[float64]string{
		12.5:     "12.5",
		33.33333: "33.33",
		66.666:   "66.67",
		0:        "0",
		100:      "100",
	}
	for in, want := range cases {
		if got := Float(in); got != want {
			t.Errorf("Float(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteAndReadCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tbl := Table{
		Name:   "test.csv",
		Header: []string{"Player", "Kills"},
		Rows:   [][]string{{"donk", "5"}, {"Team, with comma", "0"}},
	}
	path, err := WriteCSV(dir, tbl)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(raw), "Player,Kills\n") {
		t.Errorf("unexpected header line: %q", raw)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got.Rows) != 2 || got.Rows[1][0] != "Team, with comma" {
		t.Errorf("rows = %v", got.Rows)
	}
	if err := RequireColumns(got, "Player", "Kills"); err != nil {
		t.Errorf("RequireColumns: %v", err)
	}
	if err := RequireColumns(got, "Player", "Rating"); err == nil {
		t.Error("expected missing column error")
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecords(t *testing.T) {
	tbl := Table{Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3"}}}
	recs := tbl.Records()
	if recs[0]["B"] != "2" || recs[1]["A"] != "3" {
		t.Errorf("records = %v", recs)
	}
	if _, ok := recs[1]["B"]; ok {
		t.Error("short row should not fill missing column")
	}
}

func TestSaveChartInsufficientSample(t *testing.T) {
	dir := t.TempDir()
	c := Chart{File: "small.svg", Labels: []string{"a", "b"}, Values: []float64{1, 2}}
	_, err := SaveChart(dir, c)
	if !errors.Is(err, ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "small.svg")); !os.IsNotExist(statErr) {
		t.Error("chart file should not be written")
	}
}

func TestSaveChart(t *testing.T) {
	dir := t.TempDir()
	c := Chart{File: "top.svg", Title: "Top <10>", Unit: "%"}
	for i := 0; i < MinChartPlayers; i++ {
		c.Labels = append(c.Labels, string(rune('a'+i)))
		c.Values = append(c.Values, float64(i))
	}
	path, err := SaveChart(dir, c)
	if err != nil {
		t.Fatalf("SaveChart: %v", err)
	}
	raw, _ := os.ReadFile(path)
	svg := string(raw)
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("output is not an svg document")
	}
	if !strings.Contains(svg, "Top &lt;10&gt;") {
		t.Error("title should be escaped")
	}
	if got := strings.Count(svg, "<rect"); got != MinChartPlayers+1 {
		t.Errorf("expected %d rects (background + bars), got %d", MinChartPlayers+1, got)
	}
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"PLAYER", "K/D"}, [][]string{{"ZywOo", "1.45"}})
	out := buf.String()
	if !strings.Contains(out, "ZywOo") || !strings.Contains(out, "1.45") {
		t.Errorf("table output missing row data:\n%s", out)
	}
}

func TestSaveScatter(t *testing.T) {
	dir := t.TempDir()
	s := Scatter{
		File:  "de_nuke_first_blood.svg",
		Title: "First blood: de_nuke",
		Series: []Series{
			{Label: "CT", Color: "#3498db", X: []float64{-500, 120}, Y: []float64{-800, 40}},
			{Label: "T", Color: "#f39c12", X: []float64{300}, Y: []float64{900}},
		},
	}
	path, err := SaveScatter(dir, s)
	if err != nil {
		t.Fatalf("SaveScatter: %v", err)
	}
	raw, _ := os.ReadFile(path)
	svg := string(raw)
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected 3 points, got %d", got)
	}
	if !strings.Contains(svg, "CT (2)") || !strings.Contains(svg, "T (1)") {
		t.Error("legend should carry per-side counts")
	}

	// The highest point in game space is drawn nearest the top.
	single := Scatter{Series: []Series{{X: []float64{0, 0}, Y: []float64{0, 100}}}}.SVG()
	low := strings.Index(single, `cy="`)
	high := strings.LastIndex(single, `cy="`)
	if low < 0 || high <= low {
		t.Fatalf("missing points in %s", single)
	}
	var y0, y1 float64
	if _, err := fmt.Sscanf(single[low:], `cy="%f"`, &y0); err != nil {
		t.Fatal(err)
	}
	if _, err := fmt.Sscanf(single[high:], `cy="%f"`, &y1); err != nil {
		t.Fatal(err)
	}
	if y1 >= y0 {
		t.Errorf("y=100 drawn at %.1f, below y=0 at %.1f", y1, y0)
	}
}

func TestSaveScatterEmpty(t *testing.T) {
	dir := t.TempDir()
	_, err := SaveScatter(dir, Scatter{File: "empty.svg"})
	if !errors.Is(err, ErrInsufficientSample) {
		t.Errorf("err = %v, want ErrInsufficientSample", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "empty.svg")); statErr == nil {
		t.Error("empty plot should not be written")
	}
}
