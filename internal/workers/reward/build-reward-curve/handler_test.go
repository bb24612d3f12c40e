package buildrewardcurve

import (
	"context"
	"math"
	"testing"
	"time"

	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/internal/reward"
	"publication-rewards/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) Sync() error { return nil }

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       5 * time.Second,
		DefaultPoints: 1.0,
		Samples:       100,
	}
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	reg, err := registry.LoadRegistry("../../../../configs/activity-registry.json")
	require.NoError(t, err)
	activity, _ := reg.Find(TaskType)

	h, err := NewHandler(createTestConfig(), activity, &testLogger{t: t})
	require.NoError(t, err)
	return h
}

func pts(v float64) *float64 { return &v }

func TestHandler_NewHandler_InvalidSamples(t *testing.T) {
	cfg := createTestConfig()
	cfg.Samples = 1

	h, err := NewHandler(cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "samples must be between")
	assert.Nil(t, h)

	cfg = createTestConfig()
	cfg.DefaultPoints = 12
	_, err = NewHandler(cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_points must lie within [0.5, 10]")
}

func TestHandler_Execute_DefaultCurve(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	require.Len(t, out.Curve, 100)
	assert.Equal(t, reward.Point{Points: 0.5, Reward: 5000}, out.Curve[0])
	assert.Equal(t, reward.Point{Points: 10, Reward: 100000}, out.Curve[99])
	assert.Equal(t, reward.DefaultCurve(), out.Curve)

	assert.Equal(t, reward.Point{Points: 1, Reward: 20000}, out.Highlight)
	assert.Equal(t, "Publication Points", out.XAxisTitle)
	assert.Equal(t, "Reward", out.YAxisTitle)

	require.Len(t, out.Milestones, 6)
	require.Len(t, out.Scale, 6)
	assert.Equal(t, "100 000", out.Scale[5].FormattedReward)

	// The sampled range and the milestones share the same end points.
	assert.Equal(t, out.Milestones[0], out.Curve[0])
	assert.Equal(t, out.Milestones[5], out.Curve[99])
}

func TestHandler_Execute_CurveIsNonDecreasing(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Samples: 500})
	require.NoError(t, err)
	require.Len(t, out.Curve, 500)

	for i := 1; i < len(out.Curve); i++ {
		assert.GreaterOrEqual(t, out.Curve[i].Points, out.Curve[i-1].Points)
		assert.GreaterOrEqual(t, out.Curve[i].Reward, out.Curve[i-1].Reward)
	}
}

func TestHandler_Execute_HighlightOutsideScale(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Points: pts(12)})
	require.NoError(t, err)
	assert.Equal(t, reward.Point{Points: 12, Reward: 100000}, out.Highlight)

	out, err = h.Execute(context.Background(), &Input{Points: pts(0.2)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Highlight.Reward)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Points: pts(math.NaN())})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPoints, errors.AsStandardError(err).Code)

	_, err = h.Execute(context.Background(), &Input{Samples: 5000})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.AsStandardError(err).Code)
}

func TestHandler_DecodeInput(t *testing.T) {
	h := createTestHandler(t)

	var input Input
	err := h.activity.DecodeInput(`{"samples": 0.5}`, &input)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.AsStandardError(err).Code)

	input = Input{}
	require.NoError(t, h.activity.DecodeInput(`{"points": 3.3, "samples": 20}`, &input))
	out, err := h.Execute(context.Background(), &input)
	require.NoError(t, err)
	assert.Len(t, out.Curve, 20)
	assert.InDelta(t, 43000, out.Highlight.Reward, 1e-6)
}
