// internal/workers/reward/calculate-reward/config.go
package calculatereward

import (
	"fmt"
	"time"

	"publication-rewards/internal/common/config"
	"publication-rewards/internal/reward"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	DefaultPoints float64
	// Step is the increment the calculator input advances by.
	Step float64
}

func NewConfig(rc config.RewardConfig, wc config.WorkerConfig) *Config {
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
		DefaultPoints: rc.DefaultPoints,
		Step:          rc.Step,
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
	if c.Step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	return nil
}
