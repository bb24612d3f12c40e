// internal/workers/journals/search-journals/config.go
package searchjournals

import (
	"fmt"
	"time"

	"publication-rewards/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	// CacheTimeout bounds each cache round trip so a slow Redis never
	// delays a search by more than this.
	CacheTimeout time.Duration
}

func NewConfig(wc config.WorkerConfig) *Config {
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
		CacheTimeout:  250 * time.Millisecond,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.CacheTimeout <= 0 {
		return fmt.Errorf("cache_timeout must be positive")
	}
	return nil
}
