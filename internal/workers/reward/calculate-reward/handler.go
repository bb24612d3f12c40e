// internal/workers/reward/calculate-reward/handler.go
package calculatereward

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"publication-rewards/internal/common/camunda"
	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/internal/common/metrics"
	"publication-rewards/internal/reward"
	"publication-rewards/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-reward"
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

	output, err := h.process(ctx, job.Variables)
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

func (h *Handler) process(ctx context.Context, variables string) (*Output, error) {
	var input Input
	if err := h.activity.DecodeInput(variables, &input); err != nil {
		return nil, err
	}
	return h.execute(ctx, &input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	points := h.config.DefaultPoints
	if input.Points != nil {
		points = *input.Points
	}
	if math.IsNaN(points) || math.IsInf(points, 0) {
		return nil, errors.NewInvalidPointsError(fmt.Sprintf("points: %v", points))
	}

	amount := reward.Calculate(points)
	within := reward.InRange(points)
	metrics.RewardCalculations.WithLabelValues(strconv.FormatBool(within)).Inc()

	output := &Output{
		Points:          points,
		Reward:          amount,
		FormattedReward: reward.Format(amount),
		Caption:         fmt.Sprintf("For %s points", reward.FormatPoints(points)),
		WithinRange:     within,
		Step:            h.config.Step,
	}

	h.logger.Info("reward calculated", map[string]interface{}{
		"points":      points,
		"reward":      amount,
		"withinRange": within,
	})

	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
