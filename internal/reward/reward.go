// Package reward implements the publication reward schedule: a fixed
// piecewise-linear mapping from publication points to a reward amount.
package reward

const (
	// MinPoints is the lowest score that earns a reward.
	MinPoints = 0.5
	// MaxPoints is the score at which the reward reaches its ceiling.
	MaxPoints = 10.0
	// MaxReward is paid for any score at or above MaxPoints.
	MaxReward = 100000.0
)

// segment is one closed-right linear piece of the schedule. For
// start < points <= upper the reward is base + rise*(points-start)/width.
type segment struct {
	upper float64
	start float64
	width float64
	base  float64
	rise  float64
}

// Segments are evaluated top-down, so equality at a breakpoint resolves to
// the segment ending there. Adjacent segments agree exactly at shared edges.
var schedule = []segment{
	{upper: 1, start: 0.5, width: 0.5, base: 5000, rise: 15000},
	{upper: 2, start: 1, width: 1, base: 20000, rise: 10000},
	{upper: 3, start: 2, width: 1, base: 30000, rise: 10000},
	{upper: 4, start: 3, width: 1, base: 40000, rise: 10000},
	{upper: 10, start: 4, width: 6, base: 50000, rise: 50000},
}

// Calculate returns the reward for the given number of points. It is defined
// for every input: scores below MinPoints (and NaN) earn nothing and scores
// above MaxPoints are capped at MaxReward.
func Calculate(points float64) float64 {
	if !(points >= MinPoints) {
		return 0
	}
	for _, s := range schedule {
		if points <= s.upper {
			return s.base + s.rise*(points-s.start)/s.width
		}
	}
	return MaxReward
}

// Breakpoints returns the scores where the slope of the schedule changes,
// in ascending order.
func Breakpoints() []float64 {
	out := make([]float64, 0, len(schedule)+1)
	out = append(out, MinPoints)
	for _, s := range schedule {
		out = append(out, s.upper)
	}
	return out
}

// InRange reports whether points lies inside the advertised input domain.
func InRange(points float64) bool {
	return points >= MinPoints && points <= MaxPoints
}
