// internal/workers/reward/build-reward-curve/models.go
package buildrewardcurve

import "publication-rewards/internal/reward"

type Input struct {
	Points  *float64 `json:"points,omitempty"`
	Samples int      `json:"samples,omitempty"`
}

// Output is everything a chart needs: the sampled curve, the breakpoints,
// the requested score marked on the curve and the milestone table.
type Output struct {
	Curve      []reward.Point      `json:"curve"`
	Milestones []reward.Point      `json:"milestones"`
	Highlight  reward.Point        `json:"highlight"`
	Scale      []reward.ScaleEntry `json:"scale"`
	XAxisTitle string              `json:"xAxisTitle"`
	YAxisTitle string              `json:"yAxisTitle"`
}
