package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHealth(t *testing.T) {
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSystemHandler("boxerp", "1.2.3").RegisterRoutes(api)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Data.Status)
	assert.Equal(t, "boxerp", resp.Data.App)
	assert.Equal(t, "1.2.3", resp.Data.Version)
	assert.NotEmpty(t, resp.Data.Uptime)
}
