package report

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// MinChartPlayers is the smallest player set a chart is drawn for.
const MinChartPlayers = 10

// ErrInsufficientSample is returned when a chart has too few bars to draw.
var ErrInsufficientSample = errors.New("insufficient sample")

// Chart is a horizontal bar chart of one metric per player.
type Chart struct {
	File   string // output file name, e.g. "exit_frag_top10.svg"
	Title  string
	Unit   string // suffix for bar labels, e.g. "%"
	Color  string
	Labels []string
	Values []float64
}

// SVG renders the chart. Bars are drawn in input order, top to bottom.
func (c Chart) SVG() string {
	const (
		width    = 800
		barH     = 32
		gap      = 8
		padTop   = 60
		padLeft  = 180
		padRight = 80
	)
	height := padTop + len(c.Values)*(barH+gap) + 20
	maxVal := 0.0
	for _, v := range c.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	color := c.Color
	if color == "" {
		color = "#4a90e2"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height, width, height))
	sb.WriteString(`<rect width="100%" height="100%" fill="#1a1a1a" />`)
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="35" fill="white" font-family="Arial" font-size="20" text-anchor="middle">%s</text>`, width/2, html.EscapeString(c.Title)))

	plotW := width - padLeft - padRight
	for i, v := range c.Values {
		y := padTop + i*(barH+gap)
		w := 0
		if maxVal > 0 {
			w = int(v / maxVal * float64(plotW))
		}
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="white" font-family="Arial" font-size="14" text-anchor="end">%s</text>`, padLeft-10, y+barH/2+5, html.EscapeString(label)))
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="4" />`, padLeft, y, w, barH, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="white" font-family="Arial" font-size="12">%s%s</text>`, padLeft+w+6, y+barH/2+4, Float(v), c.Unit))
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// SaveChart writes c to dir/c.File. Charts with fewer than MinChartPlayers
// bars are not written and ErrInsufficientSample is returned.
func SaveChart(dir string, c Chart) (string, error) {
	if len(c.Values) < MinChartPlayers {
		return "", fmt.Errorf("%s: %w: %d players, need %d", c.File, ErrInsufficientSample, len(c.Values), MinChartPlayers)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, c.File)
	if err := os.WriteFile(path, []byte(c.SVG()), 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}
