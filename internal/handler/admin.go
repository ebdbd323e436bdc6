package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/shop-ledger/internal/service"
)

// AdminHandler exposes the PIN-guarded bulk clears.
//
// HTTP: POST /api/admin/clear/{target} with target one of
// "products", "sales", "all". The PIN travels in the body, never the
// URL — URLs end up in logs.
type AdminHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func NewAdminHandler(admin *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

func (h *AdminHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	var err error
	target := r.PathValue("target")
	switch target {
	case "products":
		err = h.admin.ClearProducts(r.Context(), req.PIN)
	case "sales":
		err = h.admin.ClearSales(r.Context(), req.PIN)
	case "all":
		err = h.admin.ClearAll(r.Context(), req.PIN)
	default:
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "unknown clear target: " + target,
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"cleared": target})
}
