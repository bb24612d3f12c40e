// internal/workers/reward/calculate-reward/models.go
package calculatereward

// Input carries the score to evaluate. A nil Points uses the configured default.
type Input struct {
	Points *float64 `json:"points,omitempty"`
}

type Output struct {
	Points          float64 `json:"points"`
	Reward          float64 `json:"reward"`
	FormattedReward string  `json:"formattedReward"`
	Caption         string  `json:"caption"`
	WithinRange     bool    `json:"withinRange"`
	Step            float64 `json:"step"`
}
