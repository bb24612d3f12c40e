package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"parse", NewParseError(cause), ErrCodeParseError, false},
		{"validation", NewInputValidationFailedError("points: Invalid type"), ErrCodeInputValidationFailed, false},
		{"points", NewInvalidPointsError("NaN"), ErrCodeInvalidPoints, false},
		{"catalog", NewCatalogInvalidError(cause), ErrCodeCatalogInvalid, false},
		{"cache", NewCacheUnavailableError("get", cause), ErrCodeCacheUnavailable, true},
		{"external", NewExternalServiceError("zeebe", cause), ErrCodeExternalServiceFailure, true},
		{"timeout", NewTimeoutError("zeebe", cause), ErrCodeTimeout, true},
		{"internal", NewInternalError(cause), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
			assert.WithinDuration(t, time.Now().UTC(), tt.err.Timestamp, time.Minute)
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 2, GetRetryCount(ErrCodeCacheUnavailable))
	assert.Equal(t, 3, GetRetryCount(ErrCodeExternalServiceFailure))
	assert.Equal(t, 0, GetRetryCount(ErrCodeInvalidPoints))
	assert.Equal(t, 0, GetRetryCount(ErrCodeParseError))
	assert.True(t, IsRetryableErrorCode(ErrCodeTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeCatalogInvalid))
}

func TestConvertToBPMNError_CodeWithoutRetryBudget(t *testing.T) {
	stdErr := &StandardError{Code: ErrCodeInvalidPoints, Message: "points out of range", Retryable: true}

	bpmn := ConvertToBPMNError(stdErr)

	assert.Equal(t, "INVALID_POINTS", bpmn.Code)
	assert.False(t, bpmn.Retryable)
	assert.Equal(t, 0, bpmn.Retries)
}

func TestConvertToBPMNError(t *testing.T) {
	bpmn := ConvertToBPMNError(NewCacheUnavailableError("set", stderrors.New("timeout")))

	assert.Equal(t, "CACHE_UNAVAILABLE", bpmn.Code)
	assert.True(t, bpmn.Retryable)
	assert.Equal(t, 2, bpmn.Retries)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "CACHE_UNAVAILABLE", vars["errorCode"])
	assert.Equal(t, "CACHE_UNAVAILABLE", vars["originalErrorCode"])
	assert.Contains(t, vars, "timestamp")
}

func TestConvertToBPMNError_NonRetryableHasNoRetries(t *testing.T) {
	stdErr := NewCacheUnavailableError("get", stderrors.New("x"))
	stdErr.Retryable = false

	assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
}

func TestConvertToBPMNError_UnknownCodeFallsBack(t *testing.T) {
	bpmn := ConvertToBPMNError(&StandardError{Code: "SOMETHING_ELSE", Message: "m"})
	assert.Equal(t, "SOMETHING_ELSE", bpmn.Code)
}

func TestAsStandardError(t *testing.T) {
	original := NewInvalidPointsError("Inf")
	wrapped := fmt.Errorf("calculate: %w", original)

	assert.Same(t, original, AsStandardError(wrapped))

	plain := AsStandardError(stderrors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputValidationFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidPoints))
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogInvalid))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "INTEGRATION", GetErrorCategory(ErrCodeTimeout))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidPoints))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeParseError))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeRouteNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrCodeCacheUnavailable))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(ErrCodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeCatalogInvalid))
}

func TestWithMetadata(t *testing.T) {
	err := NewInvalidPointsError("x").WithMetadata("points", "abc")
	assert.Equal(t, "abc", err.Metadata["points"])
}
