package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/reward"
	searchjournals "publication-rewards/internal/workers/journals/search-journals"
	buildrewardcurve "publication-rewards/internal/workers/reward/build-reward-curve"
	calculatereward "publication-rewards/internal/workers/reward/calculate-reward"
)

// parsePoints reads the optional points parameter. An absent or empty value
// yields nil so the handler applies its default.
func parsePoints(r *http.Request) (*float64, error) {
	raw := r.URL.Query().Get("points")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.NewInvalidPointsError("points must be a number, got " + strconv.Quote(raw))
	}
	return &v, nil
}

func CalculateRewardHandler(calc RewardCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := parsePoints(r)
		if err != nil {
			writeError(w, err)
			return
		}

		out, err := calc.Execute(r.Context(), &calculatereward.Input{Points: points})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func RewardCurveHandler(curves CurveBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := parsePoints(r)
		if err != nil {
			writeError(w, err)
			return
		}

		input := &buildrewardcurve.Input{Points: points}
		if raw := r.URL.Query().Get("samples"); raw != "" {
			samples, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, errors.NewInputValidationFailedError("samples must be an integer, got "+strconv.Quote(raw)))
				return
			}
			input.Samples = samples
		}

		out, err := curves.Execute(r.Context(), input)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func RewardScaleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"scale": reward.Scale(),
		})
	}
}

// SearchJournalsHandler filters the journal table by the q parameter. The
// query is passed through as typed; an absent q lists every journal.
func SearchJournalsHandler(search JournalSearcher, decoder VariablesDecoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := &searchjournals.Input{Query: r.URL.Query().Get("q")}

		if decoder != nil {
			variables, err := json.Marshal(input)
			if err != nil {
				writeError(w, errors.NewInternalError(err))
				return
			}
			input = &searchjournals.Input{}
			if err := decoder.DecodeInput(string(variables), input); err != nil {
				writeError(w, err)
				return
			}
		}

		out, err := search.Execute(r.Context(), input)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// ReadyHandler runs every readiness check and reports 503 if any fails.
func ReadyHandler(checks map[string]ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		writeJSON(w, status, map[string]interface{}{
			"status": state,
			"checks": results,
		})
	}
}
