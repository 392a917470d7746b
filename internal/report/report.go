package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// RunStats describes one pipeline's pass over the replay set.
type RunStats struct {
	Pipeline    string
	DemosFound  int
	DemosFailed int
	KnifeRounds int
	Skipped     int // replays the pipeline could not use
	Players     int
	CSVPath     string
}

// newTable returns a tablewriter table with right-aligned rows and centred headers.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRows renders header and rows as a terminal table.
func PrintRows(w io.Writer, header []string, rows [][]string) {
	table := newTable(w)
	h := make([]any, len(header))
	for i, c := range header {
		h[i] = c
	}
	table.Header(h...)
	for _, row := range rows {
		r := make([]any, len(row))
		for i, v := range row {
			r[i] = v
		}
		table.Append(r...)
	}
	table.Render()
}

// PrintSection prints a section title underlined to its width.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

// PrintRunStats prints the headline numbers of one pipeline run.
func PrintRunStats(w io.Writer, s RunStats) {
	fmt.Fprintf(w, "\n%s  |  demos: %d (failed %d)  |  knife rounds removed: %d  |  players: %d\n",
		s.Pipeline, s.DemosFound, s.DemosFailed, s.KnifeRounds, s.Players)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "  %d replay(s) skipped for missing data\n", s.Skipped)
	}
	if s.CSVPath != "" {
		fmt.Fprintf(w, "  results saved to %s\n", s.CSVPath)
	}
}
