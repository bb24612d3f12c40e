// internal/workers/journals/search-journals/handler.go
package searchjournals

import (
	"context"
	"fmt"
	"strings"

	"publication-rewards/internal/common/camunda"
	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/internal/common/metrics"
	"publication-rewards/internal/journals"
	"publication-rewards/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "search-journals"
)

// cacheNamespace scopes the name-based UUIDs used as cache keys.
var cacheNamespace = uuid.MustParse("5b3f0c9e-6a71-4e44-9d0b-8f6a2c1d7e10")

// ResultCache stores search results between requests.
type ResultCache interface {
	Key(parts ...string) string
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

type Handler struct {
	config     *Config
	catalog    *journals.Catalog
	cache      ResultCache
	activity   *registry.Activity
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler builds the search handler. cache may be nil, in which case
// every search runs against the catalog directly.
func NewHandler(config *Config, catalog *journals.Catalog, cache ResultCache, activity *registry.Activity, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", TaskType, err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%s requires a journal catalog", TaskType)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     config,
		catalog:    catalog,
		cache:      cache,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Query == "" || h.cache == nil {
		return h.search(input.Query), nil
	}

	key := h.cacheKey(input.Query)
	if cached, ok := h.lookup(ctx, key); ok {
		cached.Query = input.Query
		cached.Cached = true
		return cached, nil
	}

	output := h.search(input.Query)
	h.store(ctx, key, output)
	return output, nil
}

func (h *Handler) search(query string) *Output {
	rows := h.catalog.Search(query)

	h.logger.Info("journals searched", map[string]interface{}{
		"query":   query,
		"matches": len(rows),
	})

	return &Output{
		Title:          h.catalog.Title(),
		CatalogVersion: h.catalog.Version(),
		Query:          query,
		Count:          len(rows),
		Rows:           rows,
	}
}

// cacheKey folds case so that queries differing only in case share an entry,
// matching the case-insensitive filter.
func (h *Handler) cacheKey(query string) string {
	id := uuid.NewSHA1(cacheNamespace, []byte(strings.ToLower(query)))
	return h.cache.Key("journals", h.catalog.Version(), id.String())
}

func (h *Handler) lookup(ctx context.Context, key string) (*Output, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.config.CacheTimeout)
	defer cancel()

	var cached Output
	found, err := h.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		metrics.SearchCache.WithLabelValues("error").Inc()
		h.logCacheError("get", err)
		return nil, false
	}
	if !found {
		metrics.SearchCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.SearchCache.WithLabelValues("hit").Inc()
	return &cached, true
}

func (h *Handler) store(ctx context.Context, key string, output *Output) {
	ctx, cancel := context.WithTimeout(ctx, h.config.CacheTimeout)
	defer cancel()

	if err := h.cache.SetJSON(ctx, key, output); err != nil {
		metrics.SearchCache.WithLabelValues("error").Inc()
		h.logCacheError("set", err)
	}
}

func (h *Handler) logCacheError(operation string, err error) {
	stdErr := errors.NewCacheUnavailableError(operation, err)
	h.logger.Warn("search cache unavailable, serving from catalog", map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
