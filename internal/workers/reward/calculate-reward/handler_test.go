package calculatereward

import (
	"context"
	"math"
	"testing"
	"time"

	"publication-rewards/internal/common/config"
	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       5 * time.Second,
		DefaultPoints: 1.0,
		Step:          0.1,
	}
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	reg, err := registry.LoadRegistry("../../../../configs/activity-registry.json")
	require.NoError(t, err)
	activity, ok := reg.Find(TaskType)
	require.True(t, ok)

	h, err := NewHandler(createTestConfig(), activity, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

func pts(v float64) *float64 { return &v }

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"zero jobs", func(c *Config) { c.MaxJobsActive = 0 }, "max_jobs_active must be positive"},
		{"default below scale", func(c *Config) { c.DefaultPoints = 0.2 }, "default_points must lie within [0.5, 10]"},
		{"default above scale", func(c *Config) { c.DefaultPoints = 10.5 }, "default_points must lie within"},
		{"zero step", func(c *Config) { c.Step = 0 }, "step must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig()
			tt.mutate(cfg)

			h, err := NewHandler(cfg, nil, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h.logger)
		})
	}
}

func TestNewConfig_FromApplicationConfig(t *testing.T) {
	cfg := NewConfig(
		config.RewardConfig{MinPoints: 0.5, MaxPoints: 10, Step: 0.25, DefaultPoints: 1},
		config.WorkerConfig{Enabled: true, MaxJobsActive: 3, Timeout: 2000},
	)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.MaxJobsActive)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 0.25, cfg.Step)
	assert.NoError(t, cfg.Validate())
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name      string
		input     *Input
		reward    float64
		formatted string
		caption   string
		within    bool
	}{
		{"default points", &Input{}, 20000, "20 000", "For 1.0 points", true},
		{"lower bound", &Input{Points: pts(0.5)}, 5000, "5 000", "For 0.5 points", true},
		{"mid segment", &Input{Points: pts(2.5)}, 35000, "35 000", "For 2.5 points", true},
		{"upper bound", &Input{Points: pts(10)}, 100000, "100 000", "For 10.0 points", true},
		{"below scale", &Input{Points: pts(0.49)}, 0, "0", "For 0.49 points", false},
		{"negative", &Input{Points: pts(-5)}, 0, "0", "For -5.0 points", false},
		{"above scale", &Input{Points: pts(11)}, 100000, "100 000", "For 11.0 points", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			assert.InDelta(t, tt.reward, out.Reward, 1e-9)
			assert.Equal(t, tt.formatted, out.FormattedReward)
			assert.Equal(t, tt.caption, out.Caption)
			assert.Equal(t, tt.within, out.WithinRange)
			assert.Equal(t, 0.1, out.Step)
		})
	}
}

func TestHandler_Execute_RejectsNonFinitePoints(t *testing.T) {
	h := createTestHandler(t)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := h.Execute(context.Background(), &Input{Points: pts(v)})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidPoints, errors.AsStandardError(err).Code)
	}
}

// ==========================
// Job Variable Tests
// ==========================

func TestHandler_Process(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name      string
		variables string
		code      errors.ErrorCode
		reward    float64
	}{
		{"points given", `{"points": 4}`, "", 50000},
		{"no variables", `{}`, "", 20000},
		{"blank variables", ``, "", 20000},
		{"extra variables ignored", `{"points": 3, "userId": "u-1"}`, "", 40000},
		{"points as text", `{"points": "3"}`, errors.ErrCodeInputValidationFailed, 0},
		{"malformed json", `{"points": 3`, errors.ErrCodeParseError, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.process(context.Background(), tt.variables)
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, errors.AsStandardError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.reward, out.Reward, 1e-9)
		})
	}
}
