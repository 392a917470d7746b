package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// Series is one colour of points in a scatter plot.
type Series struct {
	Label string
	Color string
	X, Y  []float64
}

// Scatter plots world positions, one series per side. The view is fitted to
// the points; y grows upwards as in game coordinates.
type Scatter struct {
	File   string // output file name, e.g. "de_mirage_first_blood.svg"
	Title  string
	Series []Series
}

func (s Scatter) points() int {
	n := 0
	for _, se := range s.Series {
		n += min(len(se.X), len(se.Y))
	}
	return n
}

// bounds returns the bounding box of every point, padded so no point sits
// on the edge and degenerate boxes still have an area.
func (s Scatter) bounds() (minX, minY, maxX, maxY float64) {
	first := true
	for _, se := range s.Series {
		for i := 0; i < len(se.X) && i < len(se.Y); i++ {
			x, y := se.X[i], se.Y[i]
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	padX := max((maxX-minX)*0.05, 50)
	padY := max((maxY-minY)*0.05, 50)
	return minX - padX, minY - padY, maxX + padX, maxY + padY
}

// SVG renders the plot with a legend of point counts per series.
func (s Scatter) SVG() string {
	const (
		width  = 800
		height = 800
		padTop = 60
		pad    = 20
	)
	minX, minY, maxX, maxY := s.bounds()
	plotW, plotH := float64(width-2*pad), float64(height-padTop-pad)
	scale := min(plotW/(maxX-minX), plotH/(maxY-minY))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height, width, height))
	sb.WriteString(`<rect width="100%" height="100%" fill="#1a1a1a" />`)
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="35" fill="white" font-family="Arial" font-size="20" text-anchor="middle">%s</text>`, width/2, html.EscapeString(s.Title)))

	for i, se := range s.Series {
		color := se.Color
		if color == "" {
			color = "#f39c12"
		}
		n := min(len(se.X), len(se.Y))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="Arial" font-size="12">%s (%d)</text>`, pad, padTop-8+i*14, color, html.EscapeString(se.Label), n))
		for j := 0; j < n; j++ {
			cx := float64(pad) + (se.X[j]-minX)*scale
			cy := float64(padTop) + (maxY-se.Y[j])*scale
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s" fill-opacity="0.4" />`, cx, cy, color))
		}
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// SaveScatter writes s to dir/s.File. A plot without points is not written
// and ErrInsufficientSample is returned.
func SaveScatter(dir string, s Scatter) (string, error) {
	if s.points() == 0 {
		return "", fmt.Errorf("%s: %w: no points", s.File, ErrInsufficientSample)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, s.File)
	if err := os.WriteFile(path, []byte(s.SVG()), 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}
