package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boxerp/backend/internal/application/quote"
	"github.com/boxerp/backend/internal/domain/billing"
)

// BillingHandler exposes invoice numbering and fiscal-year helpers
type BillingHandler struct {
	BaseHandler
	service *quote.Service
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(service *quote.Service) *BillingHandler {
	return &BillingHandler{service: service}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/billing/invoice-totals", h.InvoiceTotals)
	rg.POST("/billing/invoice-number", h.InvoiceNumber)
	rg.GET("/billing/financial-year", h.FinancialYear)
}

// InvoiceTotalsRequest is the payload for an invoice-level tax summary
type InvoiceTotalsRequest struct {
	LineTotals     []float64 `json:"line_totals" binding:"required,min=1"`
	DiscountAmount float64   `json:"discount_amount" binding:"gte=0"`
	GSTRate        *float64  `json:"gst_rate" binding:"omitempty,gte=0"`
	SellerGSTIN    string    `json:"seller_gstin"`
	BuyerGSTIN     string    `json:"buyer_gstin"`
	InterState     *bool     `json:"is_inter_state"`
}

// InvoiceTotals handles POST /billing/invoice-totals
func (h *BillingHandler) InvoiceTotals(c *gin.Context) {
	var req InvoiceTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	input := quote.InvoiceTotalsInput{
		TenantID:       tenantID,
		DiscountAmount: decimal.NewFromFloat(req.DiscountAmount),
		SellerGSTIN:    req.SellerGSTIN,
		BuyerGSTIN:     req.BuyerGSTIN,
		InterState:     req.InterState,
	}
	input.LineTotals = make([]decimal.Decimal, len(req.LineTotals))
	for i, line := range req.LineTotals {
		input.LineTotals[i] = decimal.NewFromFloat(line)
	}
	if req.GSTRate != nil {
		rate := decimal.NewFromFloat(*req.GSTRate)
		input.GSTRate = &rate
	}

	output, err := h.service.InvoiceTotals(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, output)
}

// InvoiceNumberRequest is the payload for invoice number generation.
// Sequence allocation happens upstream; this endpoint only formats.
type InvoiceNumberRequest struct {
	Prefix        string `json:"prefix"`
	Sequence      int    `json:"sequence" binding:"required,gt=0"`
	Date          string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	FinancialYear string `json:"financial_year"`
}

// InvoiceNumberResponse carries the formatted number and its parts
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	FinancialYear string `json:"financial_year"`
	Sequence      int    `json:"sequence"`
}

// InvoiceNumber handles POST /billing/invoice-number
func (h *BillingHandler) InvoiceNumber(c *gin.Context) {
	var req InvoiceNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	var date time.Time
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}

	number, err := h.service.NextInvoiceNumber(c.Request.Context(), quote.InvoiceNumberInput{
		TenantID:      tenantID,
		Prefix:        req.Prefix,
		Sequence:      req.Sequence,
		FinancialYear: req.FinancialYear,
		Date:          date,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Echo the year the number was generated under. An explicit
	// financial year bypasses date derivation entirely, which matters
	// for back-dated invoices raised after year close.
	fy := req.FinancialYear
	if fy == "" {
		fyDate := date
		if fyDate.IsZero() {
			fyDate = time.Now()
		}
		fy = billing.FinancialYear(fyDate)
	}
	h.Success(c, InvoiceNumberResponse{
		InvoiceNumber: number,
		FinancialYear: fy,
		Sequence:      req.Sequence,
	})
}

// FinancialYearResponse reports the fiscal year for a date
type FinancialYearResponse struct {
	Date          string `json:"date"`
	FinancialYear string `json:"financial_year"`
}

// FinancialYear handles GET /billing/financial-year. The date query
// parameter defaults to today.
func (h *BillingHandler) FinancialYear(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "date must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	h.Success(c, FinancialYearResponse{
		Date:          date.Format("2006-01-02"),
		FinancialYear: billing.FinancialYear(date),
	})
}
