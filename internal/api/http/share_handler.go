package http

import (
	"net/http"

	"rental-tracker-backend/internal/export"
	"rental-tracker-backend/internal/metrics"
	"rental-tracker-backend/internal/service"

	"github.com/gorilla/mux"
)

// ShareHandler issues supplier share links and serves the read-only view
// they open. View routes only ever see rentals of the shared supplier.
type ShareHandler struct {
	shareSvc  service.ShareService
	rentalSvc service.RentalService
	reportSvc service.ReportService
	metrics   *metrics.Metrics
}

func NewShareHandler(shareSvc service.ShareService, rentalSvc service.RentalService, reportSvc service.ReportService, m *metrics.Metrics) *ShareHandler {
	return &ShareHandler{shareSvc: shareSvc, rentalSvc: rentalSvc, reportSvc: reportSvc, metrics: m}
}

type shareRequest struct {
	Supplier string `json:"supplier"`
}

type shareResponse struct {
	Link     string `json:"link,omitempty"`
	Supplier string `json:"supplier"`
}

type resolveRequest struct {
	Link string `json:"link"`
}

func (h *ShareHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	link, err := h.shareSvc.CreateShareLink(r.Context(), req.Supplier)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Link: link, Supplier: req.Supplier})
}

func (h *ShareHandler) ResolveShareLink(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	supplier, err := h.shareSvc.ResolveShareLink(r.Context(), req.Link)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Supplier: supplier})
}

func (h *ShareHandler) ViewRentals(w http.ResponseWriter, r *http.Request) {
	filter, err := sharedFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	priced, err := h.rentalSvc.ListRentals(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalList(priced))
}

func (h *ShareHandler) ViewReport(w http.ResponseWriter, r *http.Request) {
	filter, err := sharedFilter(r.URL.Query())
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

func (h *ShareHandler) ViewExport(w http.ResponseWriter, r *http.Request) {
	filter, err := sharedFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	file, err := h.reportSvc.Export(r.Context(), filter, export.FormatCSV)
	if err != nil {
		h.metrics.ExportDone(string(export.FormatCSV), 0, err)
		writeError(w, r, err)
		return
	}
	h.metrics.ExportDone(string(export.FormatCSV), file.Rows, nil)
	writeFile(w, file)
}

func RegisterShareRoutes(router *mux.Router, h *ShareHandler) {
	router.HandleFunc("/share", h.CreateShareLink).Methods(http.MethodPost).Name("CreateShareLink")
	router.HandleFunc("/share/resolve", h.ResolveShareLink).Methods(http.MethodPost).Name("ResolveShareLink")
	router.HandleFunc("/view/rentals", h.ViewRentals).Methods(http.MethodGet).Name("ViewRentals")
	router.HandleFunc("/view/report", h.ViewReport).Methods(http.MethodGet).Name("ViewReport")
	router.HandleFunc("/view/export.csv", h.ViewExport).Methods(http.MethodGet).Name("ViewExport")
}
