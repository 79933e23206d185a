package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Domain codes are normalized to API form
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"INVALID_STATE", ErrCodeInvalidState},
		// API codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeValidation, ErrCodeValidation},
		// Unknown codes pass through unchanged
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestResponseSerialization(t *testing.T) {
	t.Run("success response omits error", func(t *testing.T) {
		data, err := json.Marshal(NewSuccessResponse(map[string]int{"n": 1}))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "error")
	})

	t.Run("error response omits data", func(t *testing.T) {
		data, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeBadRequest, "bad", "req-1"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"data"`)
		assert.Contains(t, string(data), "req-1")
	})

	t.Run("validation response carries details", func(t *testing.T) {
		resp := NewValidationErrorResponse("invalid", "req-2", []ValidationDetail{
			{Field: "gsm", Message: "failed on the 'gt' rule"},
		})
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		assert.Len(t, resp.Error.Details, 1)
	})
}
