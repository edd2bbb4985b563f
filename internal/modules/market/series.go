// Package market generates the synthetic price series driving the dashboard
// charts. Prices follow a bounded random walk; there is no real market feed
// behind this package, and a real one would slot in behind the same types.
package market

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxPoints caps the series length. Once at the cap, each advance evicts the
// oldest point.
const MaxPoints = 120

const (
	// initStepPct bounds each seed step to ±2% of the base price.
	initStepPct = 0.02

	// advanceStep bounds each live step to a fixed ±1.00 absolute delta.
	advanceStep = 1.0

	// maxVolume bounds the per-point synthetic volume.
	maxVolume = 1000
)

// Point is a single observation in the series.
type Point struct {
	Time   int     `json:"time"`
	Price  float64 `json:"price"`
	Volume int     `json:"volume"`
}

// Series is an ordered sequence of points, oldest first. Values are treated
// as immutable: Advance returns a new Series and never mutates its receiver,
// so callers own the replacement of their stored copy.
type Series struct {
	points []Point
	next   int // next time label, monotonic across evictions
}

// NewSeries seeds a random walk of pointCount points starting from basePrice.
// Each step perturbs the previous price by at most ±2% of basePrice, clamped
// at zero and rounded to cents. Volumes are independent random non-negative
// integers.
func NewSeries(rng *rand.Rand, pointCount int, basePrice float64) Series {
	points := make([]Point, 0, pointCount)
	price := clampPrice(basePrice)

	for i := 0; i < pointCount; i++ {
		delta := (rng.Float64()*2 - 1) * basePrice * initStepPct
		price = clampPrice(round2(price + delta))
		points = append(points, Point{
			Time:   i,
			Price:  price,
			Volume: rng.Intn(maxVolume),
		})
	}

	return Series{points: points, next: pointCount}
}

// Advance returns a new series extended by exactly one point. The new price
// is the prior last price plus a bounded absolute delta, clamped at zero. At
// the cap the oldest point is evicted so the length is preserved.
func Advance(rng *rand.Rand, s Series) Series {
	last := 0.0
	if n := len(s.points); n > 0 {
		last = s.points[n-1].Price
	}

	delta := (rng.Float64()*2 - 1) * advanceStep
	point := Point{
		Time:   s.next,
		Price:  clampPrice(round2(last + delta)),
		Volume: rng.Intn(maxVolume),
	}

	points := make([]Point, 0, len(s.points)+1)
	points = append(points, s.points...)
	points = append(points, point)
	if len(points) > MaxPoints {
		points = points[1:]
	}

	return Series{points: points, next: s.next + 1}
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.points)
}

// Points returns a copy of the series points, oldest first.
func (s Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Last returns the most recent point. ok is false for an empty series.
func (s Series) Last() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// Change returns the absolute and percentage change of the last price versus
// the previous point. A series shorter than two points has no change.
func (s Series) Change() (abs, pct float64) {
	n := len(s.points)
	if n < 2 {
		return 0, 0
	}
	prev := s.points[n-2].Price
	abs = round2(s.points[n-1].Price - prev)
	if prev != 0 {
		pct = abs / prev * 100
	}
	return abs, pct
}

// Scale returns the price domain of the series (min, max, mean) for chart
// axis derivation. An empty series has a zero scale.
func (s Series) Scale() (min, max, mean float64) {
	if len(s.points) == 0 {
		return 0, 0, 0
	}

	prices := make([]float64, len(s.points))
	for i, p := range s.points {
		prices[i] = p.Price
	}

	return floats.Min(prices), floats.Max(prices), stat.Mean(prices, nil)
}

// clampPrice enforces the non-negativity policy on simulated prices.
func clampPrice(p float64) float64 {
	if p < 0 {
		return 0
	}
	return p
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
