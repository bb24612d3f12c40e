package reward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_ExactValues(t *testing.T) {
	tests := []struct {
		name     string
		points   float64
		expected float64
	}{
		{"zero", 0, 0},
		{"just below threshold", 0.49, 0},
		{"negative", -5, 0},
		{"threshold", 0.5, 5000},
		{"first segment midpoint", 0.75, 12500},
		{"one point", 1.0, 20000},
		{"between one and two", 1.5, 25000},
		{"two points", 2.0, 30000},
		{"between two and three", 2.5, 35000},
		{"three points", 3.0, 40000},
		{"four points", 4.0, 50000},
		{"halfway to ten", 7.0, 75000},
		{"ten points", 10.0, 100000},
		{"above ceiling", 11, 100000},
		{"far above ceiling", 1e9, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.points))
		})
	}
}

func TestCalculate_ContinuousAtBreakpoints(t *testing.T) {
	// Both neighbouring segment formulas must agree exactly where they meet.
	for i := 0; i < len(schedule)-1; i++ {
		left, right := schedule[i], schedule[i+1]
		edge := left.upper

		fromLeft := left.base + left.rise*(edge-left.start)/left.width
		fromRight := right.base + right.rise*(edge-right.start)/right.width

		assert.Equal(t, fromLeft, fromRight, "discontinuity at %v", edge)
		assert.Equal(t, fromLeft, Calculate(edge))
	}

	expected := map[float64]float64{1: 20000, 2: 30000, 3: 40000, 4: 50000}
	for p, want := range expected {
		assert.Equal(t, want, Calculate(p), "points=%v", p)
	}
}

func TestCalculate_Monotonic(t *testing.T) {
	prev := Calculate(MinPoints)
	for i := 1; i <= 950; i++ {
		p := MinPoints + float64(i)*0.01
		got := Calculate(p)
		require.GreaterOrEqual(t, got, prev, "reward decreased at %v", p)
		prev = got
	}
}

func TestCalculate_NaN(t *testing.T) {
	assert.Equal(t, 0.0, Calculate(math.NaN()))
	assert.Equal(t, 0.0, Calculate(math.Inf(-1)))
	assert.Equal(t, MaxReward, Calculate(math.Inf(1)))
}

func TestBreakpoints(t *testing.T) {
	assert.Equal(t, []float64{0.5, 1, 2, 3, 4, 10}, Breakpoints())
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0.5))
	assert.True(t, InRange(10))
	assert.True(t, InRange(3.3))
	assert.False(t, InRange(0.49))
	assert.False(t, InRange(10.01))
	assert.False(t, InRange(math.NaN()))
}
