package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaxTestEngine() *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewTaxHandler(decimal.Zero).RegisterRoutes(api)
	return engine
}

func decodeGST(t *testing.T, body []byte) GSTResponse {
	t.Helper()
	var resp struct {
		Data GSTResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func TestTaxCalculateGST(t *testing.T) {
	engine := newTaxTestEngine()

	t.Run("intra state splits into CGST and SGST", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst", map[string]any{
			"amount":         1000,
			"is_inter_state": false,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeGST(t, w.Body.Bytes())
		assert.Equal(t, "1000.00", data.TaxableValue)
		assert.Equal(t, "90.00", data.CGST)
		assert.Equal(t, "90.00", data.SGST)
		assert.Equal(t, "0.00", data.IGST)
		assert.Equal(t, "180.00", data.TotalGST)
		assert.Equal(t, "1180.00", data.TotalAmount)
		assert.False(t, data.InterState)
	})

	t.Run("inter state with discount uses IGST", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst", map[string]any{
			"amount":          1000,
			"discount_amount": 200,
			"is_inter_state":  true,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeGST(t, w.Body.Bytes())
		assert.Equal(t, "800.00", data.TaxableValue)
		assert.Equal(t, "144.00", data.IGST)
		assert.Equal(t, "0.00", data.CGST)
		assert.Equal(t, "944.00", data.TotalAmount)
		assert.True(t, data.InterState)
	})

	t.Run("inter state derived from GSTINs", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst", map[string]any{
			"amount":       1000,
			"seller_gstin": "27AABCU9603R1ZM",
			"buyer_gstin":  "06ABCDE1234F1Z5",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeGST(t, w.Body.Bytes())
		assert.True(t, data.InterState)
		assert.Equal(t, "180.00", data.IGST)
	})

	t.Run("explicit rate overrides default", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst", map[string]any{
			"amount":   1000,
			"gst_rate": 12,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeGST(t, w.Body.Bytes())
		assert.Equal(t, "120.00", data.TotalGST)
	})

	t.Run("odd paise total favours CGST", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst", map[string]any{
			"amount": 100.03,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeGST(t, w.Body.Bytes())
		assert.Equal(t, "18.01", data.TotalGST)
		assert.Equal(t, "9.01", data.CGST)
		assert.Equal(t, "9.00", data.SGST)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst", map[string]any{
			"amount": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaxReverseGST(t *testing.T) {
	engine := newTaxTestEngine()

	t.Run("backs out the base amount", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst/reverse", map[string]any{
			"total_amount": 1180,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data ReverseGSTResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1000.00", resp.Data.BaseAmount)
	})

	t.Run("explicit rate", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gst/reverse", map[string]any{
			"total_amount": 1120,
			"gst_rate":     12,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data ReverseGSTResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1000.00", resp.Data.BaseAmount)
	})
}

func TestTaxValidateGSTIN(t *testing.T) {
	engine := newTaxTestEngine()

	t.Run("valid GSTIN includes state code", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gstin/validate", map[string]any{
			"gstin": "27AABCU9603R1ZM",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data GSTINResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Valid)
		assert.Equal(t, "27", resp.Data.StateCode)
	})

	t.Run("invalid GSTIN is still a 200", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gstin/validate", map[string]any{
			"gstin": "00AABCU9603R1ZM",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data GSTINResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Data.Valid)
		assert.Empty(t, resp.Data.StateCode)
	})

	t.Run("missing gstin fails binding", func(t *testing.T) {
		w := postJSON(t, engine, "/api/v1/tax/gstin/validate", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
