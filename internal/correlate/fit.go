// Package correlate relates a player's share of team economy to their
// results across events.
package correlate

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinPoints is the smallest sample a line is fitted to.
const MinPoints = 3

// ErrTooFewPoints is returned when a fit has fewer than MinPoints points or
// no spread in x.
var ErrTooFewPoints = errors.New("not enough data points")

// Fit is an ordinary least-squares line y = Slope*x + Intercept.
type Fit struct {
	N         int
	Slope     float64
	Intercept float64
	R2        float64
	P         float64 // two-sided p-value for a zero slope
}

// Significant reports whether the slope is significant at the 5% level.
func (f Fit) Significant() bool { return f.P < 0.05 }

// Linear fits a least-squares line through (x[i], y[i]).
func Linear(x, y []float64) (Fit, error) {
	n := len(x)
	if n != len(y) {
		return Fit{}, errors.New("x and y differ in length")
	}
	if n < MinPoints {
		return Fit{}, ErrTooFewPoints
	}
	if stat.Variance(x, nil) == 0 {
		return Fit{}, ErrTooFewPoints
	}

	f := Fit{N: n}
	f.Intercept, f.Slope = stat.LinearRegression(x, y, nil, false)
	if stat.Variance(y, nil) == 0 {
		// Flat y: the line is exact and carries no correlation.
		f.P = 1
		return f, nil
	}
	f.R2 = stat.RSquared(x, y, nil, f.Intercept, f.Slope)
	f.P = slopePValue(f.R2, n)
	return f, nil
}

// slopePValue is the two-sided Student's t p-value of a zero slope given the
// fit's R² on n points.
func slopePValue(r2 float64, n int) float64 {
	if 1-r2 <= 1e-15 {
		return 0
	}
	df := float64(n - 2)
	t := math.Sqrt(r2 * df / (1 - r2))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - dist.CDF(t))
}
