package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxerp/backend/internal/application/quote"
	"github.com/boxerp/backend/internal/interfaces/http/dto"
)

func newCostingTestEngine() *gin.Engine {
	engine := gin.New()
	service := quote.NewService(quote.NewDefaults(), nil)
	api := engine.Group("/api/v1")
	NewCostingHandler(service).RegisterRoutes(api)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func calculateRequestBody() map[string]any {
	return map[string]any{
		"length":   300,
		"width":    200,
		"height":   150,
		"ply":      3,
		"quantity": 1000,
		"layers": []map[string]any{
			{"bf": 18, "gsm": 150, "shade": "KRA"},
			{"bf": 12, "gsm": 120, "shade": "KRA", "is_flute": true},
			{"bf": 18, "gsm": 150, "shade": "KRA"},
		},
		"conversion_rate": 15,
		"printing_cost":   0.50,
		"die_cost":        0.25,
		"rates": []map[string]any{
			{"bf": 18, "gsm": 150, "shade": "KRA", "rate": 42.50},
			{"bf": 12, "gsm": 120, "shade": "KRA", "rate": 36.00},
		},
	}
}

func TestCostingCalculate(t *testing.T) {
	engine := newCostingTestEngine()

	t.Run("costs a three ply box", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/costing/calculate", calculateRequestBody())
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                  `json:"success"`
			Data    quote.QuoteLineOutput `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		result := resp.Data.Result
		assert.InDelta(t, 1070.0, result.SheetLength, 1e-9)
		assert.InDelta(t, 340.0, result.SheetWidth, 1e-9)
		assert.Equal(t, "10.1015", result.UnitCost.String())
		assert.Equal(t, "10101.5", result.TotalCost.String())
		assert.Empty(t, resp.Data.MissingRates)
	})

	t.Run("reports missing rates", func(t *testing.T) {
		body := calculateRequestBody()
		body["rates"] = []map[string]any{
			{"bf": 18, "gsm": 150, "shade": "KRA", "rate": 42.50},
		}
		w := postJSON(t, engine, "/api/v1/costing/calculate", body)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data quote.QuoteLineOutput `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"bf=12 gsm=120 shade=KRA"}, resp.Data.MissingRates)
	})

	t.Run("rejects layer count mismatch", func(t *testing.T) {
		body := calculateRequestBody()
		body["ply"] = 5
		w := postJSON(t, engine, "/api/v1/costing/calculate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	})

	t.Run("rejects out of range ply at binding", func(t *testing.T) {
		body := calculateRequestBody()
		body["ply"] = 11
		w := postJSON(t, engine, "/api/v1/costing/calculate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/costing/calculate", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})

	t.Run("rejects malformed tenant header", func(t *testing.T) {
		payload, err := json.Marshal(calculateRequestBody())
		require.NoError(t, err)
		req := httptest.NewRequest("POST", "/api/v1/costing/calculate", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-ID", "not-a-uuid")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCostingPaperRate(t *testing.T) {
	engine := newCostingTestEngine()

	t.Run("resolves rate with low GSM adjustment", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/pricing/paper-rate", map[string]any{
			"bf":                  18,
			"gsm":                 90,
			"shade":               "KRA",
			"bf_base_price":       42.50,
			"low_gsm_threshold":   100,
			"low_gsm_adjustment":  2.00,
			"high_gsm_threshold":  200,
			"high_gsm_adjustment": -1.50,
			"shade_premium":       0.75,
			"market_adjustment":   0.75,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data PaperRateResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 18, resp.Data.BF)
		assert.Equal(t, 90, resp.Data.GSM)
		assert.Equal(t, "46.00", resp.Data.Rate)
	})

	t.Run("rejects non-positive gsm", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/pricing/paper-rate", map[string]any{
			"bf":            18,
			"gsm":           0,
			"bf_base_price": 42.50,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
