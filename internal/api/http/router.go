package http

import (
	"context"
	"net/http"
	"time"

	"rental-tracker-backend/internal/metrics"
	"rental-tracker-backend/internal/service"
	"rental-tracker-backend/internal/utils"

	"github.com/gorilla/mux"
)

const apiPrefix = "/api/v1"

type Services struct {
	Auth   service.AuthService
	User   service.UserService
	Rental service.RentalService
	Report service.ReportService
	Share  service.ShareService
}

type RouterOptions struct {
	Calendar       *utils.Calendar
	Metrics        *metrics.Metrics
	MetricsPath    string
	CORSOrigins    []string
	MaxUploadBytes int64
	// Ping reports database health for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewRouter wires every route. Route names key the security levels in
// config.EndpointSecurityConfig.
func NewRouter(svcs Services, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)
	router.Use(opts.Metrics.Middleware)
	router.Use(NewAuthMiddleware(svcs.Auth).Handler)

	router.HandleFunc("/health", healthHandler(opts.Ping)).Methods(http.MethodGet).Name("Health")
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, opts.Metrics.Handler()).Methods(http.MethodGet).Name("Metrics")
	}

	api := router.PathPrefix(apiPrefix).Subrouter()
	RegisterAuthRoutes(api, NewAuthHandler(svcs.Auth))
	RegisterRentalRoutes(api, NewRentalHandler(svcs.Rental, opts.Calendar, opts.MaxUploadBytes))
	RegisterReportRoutes(api, NewReportHandler(svcs.Report, opts.Metrics))
	RegisterShareRoutes(api, NewShareHandler(svcs.Share, svcs.Rental, svcs.Report, opts.Metrics))
	RegisterUserRoutes(api, NewUserHandler(svcs.User))

	RegisterAttachmentRoutes(router, NewAttachmentHandler(svcs.Rental))

	// Subrouters answer mismatches themselves, so both need the handlers.
	for _, r := range []*mux.Router{router, api} {
		r.NotFoundHandler = http.HandlerFunc(notFound)
		r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}

	return CORS(opts.CORSOrigins, router)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
