package reward

// DefaultSamples is the number of points drawn along the reward curve.
const DefaultSamples = 100

// Point pairs a score with its reward.
type Point struct {
	Points float64 `json:"points"`
	Reward float64 `json:"reward"`
}

// ScaleEntry is a milestone with its reward rendered for display.
type ScaleEntry struct {
	Points          float64 `json:"points"`
	Reward          float64 `json:"reward"`
	FormattedReward string  `json:"formattedReward"`
}

// At evaluates the schedule at a single score.
func At(points float64) Point {
	return Point{Points: points, Reward: Calculate(points)}
}

// Curve samples the schedule at n evenly spaced scores from `from` to `to`
// inclusive. The last sample is exactly `to`. n < 1 yields an empty curve.
func Curve(from, to float64, n int) []Point {
	if n < 1 {
		return []Point{}
	}
	if n == 1 {
		return []Point{At(from)}
	}

	step := (to - from) / float64(n-1)
	out := make([]Point, n)
	for i := 0; i < n-1; i++ {
		out[i] = At(from + float64(i)*step)
	}
	out[n-1] = At(to)
	return out
}

// DefaultCurve samples the advertised input domain.
func DefaultCurve() []Point {
	return Curve(MinPoints, MaxPoints, DefaultSamples)
}

// Milestones evaluates the schedule at each breakpoint.
func Milestones() []Point {
	bps := Breakpoints()
	out := make([]Point, len(bps))
	for i, p := range bps {
		out[i] = At(p)
	}
	return out
}

// Scale is the milestone table shown next to the calculator.
func Scale() []ScaleEntry {
	ms := Milestones()
	out := make([]ScaleEntry, len(ms))
	for i, m := range ms {
		out[i] = ScaleEntry{
			Points:          m.Points,
			Reward:          m.Reward,
			FormattedReward: Format(m.Reward),
		}
	}
	return out
}
