package http

import (
	"net/http"

	"rental-tracker-backend/internal/service"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrInvalidToken)
		return
	}
	out := *session
	out.Token = ""
	writeJSON(w, http.StatusOK, out)
}

// RequestPasswordReset always answers 202 so callers cannot probe which
// addresses have an account.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.authSvc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "if the address has an account, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.authSvc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func RegisterAuthRoutes(router *mux.Router, h *AuthHandler) {
	router.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost).Name("Login")
	router.HandleFunc("/auth/session", h.CurrentSession).Methods(http.MethodGet).Name("CurrentSession")
	router.HandleFunc("/auth/password/forgot", h.RequestPasswordReset).Methods(http.MethodPost).Name("RequestPasswordReset")
	router.HandleFunc("/auth/password/reset", h.ResetPassword).Methods(http.MethodPost).Name("ResetPassword")
}
