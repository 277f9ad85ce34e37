package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/service"
	"rental-tracker-backend/internal/utils"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentalSvc      service.RentalService
	calendar       *utils.Calendar
	maxUploadBytes int64
}

func NewRentalHandler(rentalSvc service.RentalService, calendar *utils.Calendar, maxUploadBytes int64) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc, calendar: calendar, maxUploadBytes: maxUploadBytes}
}

// rentalRequest is the body of a create or update. Dates travel as
// yyyy-mm-dd strings and an empty return_date means still rented.
type rentalRequest struct {
	Supplier     string  `json:"supplier"`
	Description  string  `json:"description"`
	Sector       string  `json:"sector"`
	DailyRate    float64 `json:"daily_rate"`
	WeeklyRate   float64 `json:"weekly_rate"`
	MonthlyRate  float64 `json:"monthly_rate"`
	RateOption   string  `json:"rate_option"`
	RentalDate   string  `json:"rental_date"`
	ReturnDate   string  `json:"return_date"`
	Project      string  `json:"project"`
	Requester    string  `json:"requester"`
	UsageType    string  `json:"usage_type"`
	Observations string  `json:"observations"`
}

func (req rentalRequest) toRecord(id string) (*domain.RentalRecord, error) {
	record := &domain.RentalRecord{
		ID:           id,
		Supplier:     req.Supplier,
		Description:  req.Description,
		Sector:       req.Sector,
		DailyRate:    req.DailyRate,
		WeeklyRate:   req.WeeklyRate,
		MonthlyRate:  req.MonthlyRate,
		RateOption:   domain.RateOption(strings.ToLower(strings.TrimSpace(req.RateOption))),
		Project:      req.Project,
		Requester:    req.Requester,
		UsageType:    domain.UsageType(strings.ToLower(strings.TrimSpace(req.UsageType))),
		Observations: req.Observations,
	}
	if strings.TrimSpace(req.RentalDate) != "" {
		d, err := domain.ParseDate(req.RentalDate)
		if err != nil {
			return nil, validationErr("rental_date: %v", err)
		}
		record.RentalDate = d
	}
	if strings.TrimSpace(req.ReturnDate) != "" {
		d, err := domain.ParseDate(req.ReturnDate)
		if err != nil {
			return nil, validationErr("return_date: %v", err)
		}
		record.ReturnDate = &d
	}
	return record, nil
}

type rentalResponse struct {
	domain.PricedRental
	Status domain.RentalStatus `json:"status"`
}

type rentalListResponse struct {
	Rentals   []rentalResponse `json:"rentals"`
	TotalCost float64          `json:"total_cost"`
}

func toRentalResponse(p domain.PricedRental) rentalResponse {
	return rentalResponse{PricedRental: p, Status: p.Status()}
}

func toRentalList(priced []domain.PricedRental) rentalListResponse {
	out := rentalListResponse{Rentals: make([]rentalResponse, 0, len(priced))}
	var total float64
	for _, p := range priced {
		out.Rentals = append(out.Rentals, toRentalResponse(p))
		total += p.Cost
	}
	out.TotalCost = utils.RoundMoney(total)
	return out
}

func (h *RentalHandler) priced(r domain.RentalRecord) rentalResponse {
	return toRentalResponse(domain.PricedRental{
		RentalRecord: r,
		Cost:         utils.CalculateRentalCost(r, h.calendar.Today()),
	})
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRentalFilter(r.URL.Query())
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

func (h *RentalHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.rentalSvc.ListOptions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

func (h *RentalHandler) UpdateRental(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (h *RentalHandler) save(w http.ResponseWriter, r *http.Request, id string, status int) {
	record, upload, cleanup, err := h.readSaveRequest(w, r, id)
	defer cleanup()
	if err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := h.rentalSvc.SaveRental(r.Context(), record, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, h.priced(*saved))
}

// readSaveRequest accepts either a JSON body or a multipart form whose
// optional "receipt" part is the attachment.
func (h *RentalHandler) readSaveRequest(w http.ResponseWriter, r *http.Request, id string) (*domain.RentalRecord, *domain.AttachmentUpload, func(), error) {
	noop := func() {}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req rentalRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, nil, noop, err
		}
		record, err := req.toRecord(id)
		return record, nil, noop, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+maxJSONBody)
	if err := r.ParseMultipartForm(maxJSONBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, noop, validationErr("attachment exceeds %d bytes", h.maxUploadBytes)
		}
		return nil, nil, noop, validationErr("invalid multipart form: %v", err)
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	req, err := rentalRequestFromForm(r)
	if err != nil {
		return nil, nil, cleanup, err
	}
	record, err := req.toRecord(id)
	if err != nil {
		return nil, nil, cleanup, err
	}

	file, header, err := r.FormFile("receipt")
	if errors.Is(err, http.ErrMissingFile) {
		return record, nil, cleanup, nil
	}
	if err != nil {
		return nil, nil, cleanup, validationErr("invalid receipt: %v", err)
	}
	prev := cleanup
	cleanup = func() {
		file.Close()
		prev()
	}
	upload := &domain.AttachmentUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	return record, upload, cleanup, nil
}

func rentalRequestFromForm(r *http.Request) (rentalRequest, error) {
	req := rentalRequest{
		Supplier:     r.FormValue("supplier"),
		Description:  r.FormValue("description"),
		Sector:       r.FormValue("sector"),
		RateOption:   r.FormValue("rate_option"),
		RentalDate:   r.FormValue("rental_date"),
		ReturnDate:   r.FormValue("return_date"),
		Project:      r.FormValue("project"),
		Requester:    r.FormValue("requester"),
		UsageType:    r.FormValue("usage_type"),
		Observations: r.FormValue("observations"),
	}
	rates := []struct {
		field string
		dst   *float64
	}{
		{"daily_rate", &req.DailyRate},
		{"weekly_rate", &req.WeeklyRate},
		{"monthly_rate", &req.MonthlyRate},
	}
	for _, rate := range rates {
		raw := strings.TrimSpace(r.FormValue(rate.field))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return req, validationErr("%s must be a number", rate.field)
		}
		*rate.dst = v
	}
	return req, nil
}

func (h *RentalHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	record, err := h.rentalSvc.ToggleStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.priced(*record))
}

func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrInvalidToken)
		return
	}
	if err := h.rentalSvc.DeleteRental(r.Context(), *session, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func RegisterRentalRoutes(router *mux.Router, h *RentalHandler) {
	router.HandleFunc("/rentals", h.ListRentals).Methods(http.MethodGet).Name("ListRentals")
	router.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost).Name("CreateRental")
	router.HandleFunc("/rentals/options", h.ListOptions).Methods(http.MethodGet).Name("ListOptions")
	router.HandleFunc("/rentals/{id}", h.UpdateRental).Methods(http.MethodPut).Name("UpdateRental")
	router.HandleFunc("/rentals/{id}", h.DeleteRental).Methods(http.MethodDelete).Name("DeleteRental")
	router.HandleFunc("/rentals/{id}/toggle-status", h.ToggleStatus).Methods(http.MethodPost).Name("ToggleStatus")
}
