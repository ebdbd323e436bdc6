package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/shop-ledger/internal/service"
)

// salesPageSize is how many recent sales the sales page lists.
const salesPageSize = 10

// SaleHandler records sales and lists the recent ledger.
type SaleHandler struct {
	sales  *service.SaleService
	logger *slog.Logger
}

func NewSaleHandler(sales *service.SaleService, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{sales: sales, logger: logger}
}

// HandleRecord records a sale against stock.
//
// HTTP: POST /api/sales
// BODY: {"productId":123,"quantity":2,"date":"2026-08-31"}
//
// Date may be omitted; it defaults to today. Responds 409 with kind
// "insufficient_stock" when the product can't cover the quantity.
func (h *SaleHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64  `json:"productId"`
		Quantity  int    `json:"quantity"`
		Date      string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	sale, err := h.sales.Record(r.Context(), req.ProductID, req.Quantity, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

// HandleList returns the most recent sales joined to product names.
//
// HTTP: GET /api/sales
func (h *SaleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sales.Recent(r.Context(), salesPageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
