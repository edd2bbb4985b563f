package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewSeriesShape(t *testing.T) {
	s := NewSeries(newRng(), 24, 100.0)

	require.Equal(t, 24, s.Len())

	for i, p := range s.Points() {
		assert.Equal(t, i, p.Time, "time labels are the sequence index")
		assert.GreaterOrEqual(t, p.Price, 0.0)
		assert.GreaterOrEqual(t, p.Volume, 0)
	}
}

func TestNewSeriesStepsBounded(t *testing.T) {
	base := 100.0
	s := NewSeries(newRng(), 50, base)

	points := s.Points()
	prev := base
	for _, p := range points {
		// Each seed step moves at most 2% of base, plus rounding slack.
		assert.InDelta(t, prev, p.Price, base*0.02+0.01)
		prev = p.Price
	}
}

func TestAdvanceAppendsOnePoint(t *testing.T) {
	rng := newRng()
	s := NewSeries(rng, 10, 100.0)

	next := Advance(rng, s)

	assert.Equal(t, 11, next.Len())
	last, ok := next.Last()
	require.True(t, ok)
	assert.Equal(t, 10, last.Time)

	prevLast, _ := s.Last()
	assert.InDelta(t, prevLast.Price, last.Price, 1.0+0.01)
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	rng := newRng()
	s := NewSeries(rng, 10, 100.0)
	before := s.Points()

	_ = Advance(rng, s)

	assert.Equal(t, before, s.Points())
	assert.Equal(t, 10, s.Len())
}

func TestAdvanceNeverNegative(t *testing.T) {
	rng := newRng()
	// Start at zero so the walk keeps bumping into the clamp.
	s := NewSeries(rng, 5, 0)

	for i := 0; i < 500; i++ {
		s = Advance(rng, s)
		last, ok := s.Last()
		require.True(t, ok)
		assert.GreaterOrEqual(t, last.Price, 0.0)
	}
}

func TestAdvanceRespectsCap(t *testing.T) {
	rng := newRng()
	s := NewSeries(rng, 24, 100.0)

	for i := 0; i < 300; i++ {
		prevLen := s.Len()
		prevOldest := s.Points()[0]

		s = Advance(rng, s)

		assert.LessOrEqual(t, s.Len(), MaxPoints)
		if prevLen == MaxPoints {
			// At the cap each advance evicts exactly the oldest point.
			assert.Equal(t, MaxPoints, s.Len())
			assert.Equal(t, prevOldest.Time+1, s.Points()[0].Time)
		}
	}

	assert.Equal(t, MaxPoints, s.Len())
}

func TestTimeLabelsMonotonicAcrossEviction(t *testing.T) {
	rng := newRng()
	s := NewSeries(rng, MaxPoints, 100.0)

	s = Advance(rng, s)

	points := s.Points()
	for i := 1; i < len(points); i++ {
		assert.Equal(t, points[i-1].Time+1, points[i].Time)
	}
	last, _ := s.Last()
	assert.Equal(t, MaxPoints, last.Time)
}

func TestChange(t *testing.T) {
	s := Series{points: []Point{
		{Time: 0, Price: 100.0},
		{Time: 1, Price: 102.5},
	}, next: 2}

	abs, pct := s.Change()
	assert.InDelta(t, 2.5, abs, 1e-9)
	assert.InDelta(t, 2.5, pct, 1e-9)
}

func TestChangeShortSeries(t *testing.T) {
	abs, pct := (Series{}).Change()
	assert.Zero(t, abs)
	assert.Zero(t, pct)
}

func TestScale(t *testing.T) {
	s := Series{points: []Point{
		{Price: 10},
		{Price: 30},
		{Price: 20},
	}}

	min, max, mean := s.Scale()
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 30.0, max)
	assert.InDelta(t, 20.0, mean, 1e-9)
}

func TestScaleEmpty(t *testing.T) {
	min, max, mean := (Series{}).Scale()
	assert.Zero(t, min)
	assert.Zero(t, max)
	assert.Zero(t, mean)
}

func TestLastEmpty(t *testing.T) {
	_, ok := (Series{}).Last()
	assert.False(t, ok)
}
