// internal/workers/reward/build-reward-curve/handler.go
package buildrewardcurve

import (
	"context"
	"fmt"
	"math"

	"publication-rewards/internal/common/camunda"
	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/internal/reward"
	"publication-rewards/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "build-reward-curve"
)

type Handler struct {
	config     *Config
	activity   *registry.Activity
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, activity *registry.Activity, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", TaskType, err)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     config,
		activity:   activity,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := h.activity.DecodeInput(job.Variables, &input); err != nil {
		return h.errHandler.HandleJobError(ctx, client, job, err)
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		return h.errHandler.HandleJobError(ctx, client, job, err)
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	points := h.config.DefaultPoints
	if input.Points != nil {
		points = *input.Points
	}
	if math.IsNaN(points) || math.IsInf(points, 0) {
		return nil, errors.NewInvalidPointsError(fmt.Sprintf("points: %v", points))
	}

	samples := h.config.Samples
	if input.Samples != 0 {
		samples = input.Samples
	}
	if samples < 2 || samples > maxSamples {
		return nil, errors.NewInputValidationFailedError(
			fmt.Sprintf("samples must be between 2 and %d, got %d", maxSamples, samples))
	}

	output := &Output{
		Curve:      reward.Curve(reward.MinPoints, reward.MaxPoints, samples),
		Milestones: reward.Milestones(),
		Highlight:  reward.At(points),
		Scale:      reward.Scale(),
		XAxisTitle: XAxisTitle,
		YAxisTitle: YAxisTitle,
	}

	h.logger.Debug("reward curve built", map[string]interface{}{
		"points":  points,
		"samples": samples,
	})

	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
