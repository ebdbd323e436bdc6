package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/shop-ledger/internal/service"
)

// ReportHandler serves the dashboard, the period reports, and the CSV
// export.
type ReportHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

func NewReportHandler(reports *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// HandleDashboard returns the full dashboard view.
//
// HTTP: GET /api/dashboard
func (h *ReportHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// HandleReport returns the summary and rows for a period.
//
// HTTP: GET /api/reports?period=today|week|month|all
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Generate(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleExport streams the CSV artifact as a download.
//
// HTTP: GET /api/reports/export?period=all
//
// The body starts with a UTF-8 BOM so spreadsheet tools decode it
// correctly; the filename carries today's date.
func (h *ReportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	// Render into memory first: headers must be final before the first
	// body byte, and a validation failure mid-stream would otherwise
	// leave the client a half-written CSV. Exports are small.
	var buf bytes.Buffer
	name, err := h.reports.ExportCSV(r.Context(), r.URL.Query().Get("period"), &buf)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write csv export", slog.String("error", err.Error()))
	}
}
