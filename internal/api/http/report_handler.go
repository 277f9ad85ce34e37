package http

import (
	"fmt"
	"net/http"
	"strconv"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/export"
	"rental-tracker-backend/internal/metrics"
	"rental-tracker-backend/internal/service"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportSvc service.ReportService
	metrics   *metrics.Metrics
}

func NewReportHandler(reportSvc service.ReportService, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, metrics: m}
}

func (h *ReportHandler) ProjectReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRentalFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := h.reportSvc.ProjectReport(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) ExportRentals(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		writeError(w, r, validationErr("%v", err))
		return
	}
	filter, err := parseRentalFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	file, err := h.reportSvc.Export(r.Context(), filter, format)
	if err != nil {
		h.metrics.ExportDone(string(format), 0, err)
		writeError(w, r, err)
		return
	}
	h.metrics.ExportDone(string(format), file.Rows, nil)
	writeFile(w, file)
}

func writeFile(w http.ResponseWriter, file *domain.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}

func RegisterReportRoutes(router *mux.Router, h *ReportHandler) {
	router.HandleFunc("/reports/projects", h.ProjectReport).Methods(http.MethodGet).Name("ProjectReport")
	router.HandleFunc("/exports/rentals.{format}", h.ExportRentals).Methods(http.MethodGet).Name("ExportRentals")
}
