package http

import (
	"encoding/json"
	"net/http"

	"publication-rewards/internal/common/errors"
)

type errorResponse struct {
	Error *errors.StandardError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	stdErr := errors.AsStandardError(err)
	writeJSON(w, errors.HTTPStatus(stdErr.Code), errorResponse{Error: stdErr})
}
