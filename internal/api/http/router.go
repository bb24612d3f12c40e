// Package http exposes the reward and journal operations over a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/internal/common/observability"
	searchjournals "publication-rewards/internal/workers/journals/search-journals"
	buildrewardcurve "publication-rewards/internal/workers/reward/build-reward-curve"
	calculatereward "publication-rewards/internal/workers/reward/calculate-reward"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RewardCalculator interface {
	Execute(ctx context.Context, input *calculatereward.Input) (*calculatereward.Output, error)
}

type CurveBuilder interface {
	Execute(ctx context.Context, input *buildrewardcurve.Input) (*buildrewardcurve.Output, error)
}

type JournalSearcher interface {
	Execute(ctx context.Context, input *searchjournals.Input) (*searchjournals.Output, error)
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Config struct {
	AllowedOrigins []string
	RequestTimeout time.Duration

	Calculator RewardCalculator
	Curves     CurveBuilder
	Journals   JournalSearcher
	// SearchInput validates search variables; nil skips validation.
	SearchInput VariablesDecoder
	Readiness   map[string]ReadinessCheck

	Logger        logger.Logger
	Observability *observability.Observability
}

// VariablesDecoder decodes JSON variables into dest after validating them.
type VariablesDecoder interface {
	DecodeInput(variables string, dest interface{}) error
}

func NewRouter(cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID, middleware.RealIP, middleware.Recoverer)
	r.Use(instrument(cfg.Observability), requestLogger(log))
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.NewRouteNotFoundError(r.URL.Path))
	})

	r.Get("/health", HealthHandler())
	r.Get("/ready", ReadyHandler(cfg.Readiness))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/reward", CalculateRewardHandler(cfg.Calculator))
		api.Get("/reward/curve", RewardCurveHandler(cfg.Curves))
		api.Get("/reward/scale", RewardScaleHandler())
		api.Get("/journals", SearchJournalsHandler(cfg.Journals, cfg.SearchInput))
	})

	return r
}
