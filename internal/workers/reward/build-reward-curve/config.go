// internal/workers/reward/build-reward-curve/config.go
package buildrewardcurve

import (
	"fmt"
	"time"

	"publication-rewards/internal/common/config"
	"publication-rewards/internal/reward"
)

const (
	XAxisTitle = "Publication Points"
	YAxisTitle = "Reward"

	maxSamples = 1000
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	DefaultPoints float64
	Samples       int
}

func NewConfig(rc config.RewardConfig, wc config.WorkerConfig) *Config {
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
		DefaultPoints: rc.DefaultPoints,
		Samples:       rc.CurveSamples,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if !reward.InRange(c.DefaultPoints) {
		return fmt.Errorf("default_points must lie within [%g, %g]", reward.MinPoints, reward.MaxPoints)
	}
	if c.Samples < 2 || c.Samples > maxSamples {
		return fmt.Errorf("samples must be between 2 and %d", maxSamples)
	}
	return nil
}
