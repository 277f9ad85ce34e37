package http

import (
	"net/http"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/service"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type createUserRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []domain.UserAccount{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.userSvc.CreateUser(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userSvc.DeleteUser(r.Context(), mux.Vars(r)["email"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func RegisterUserRoutes(router *mux.Router, h *UserHandler) {
	router.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet).Name("ListUsers")
	router.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost).Name("CreateUser")
	router.HandleFunc("/users/{email}", h.DeleteUser).Methods(http.MethodDelete).Name("DeleteUser")
}
