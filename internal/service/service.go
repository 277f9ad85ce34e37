package service

import (
	"context"
	"io"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/export"
	"rental-tracker-backend/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.UserAccount, error)
	DeleteUser(ctx context.Context, email string) error
	EnsureSeedAdmin(ctx context.Context) error
}

type RentalService interface {
	ListRentals(ctx context.Context, filter utils.RentalFilter) ([]domain.PricedRental, error)
	FindRentals(ctx context.Context, filter utils.RentalFilter) ([]domain.RentalRecord, error)
	GetRental(ctx context.Context, id string) (*domain.RentalRecord, error)
	SaveRental(ctx context.Context, record *domain.RentalRecord, upload *domain.AttachmentUpload) (*domain.RentalRecord, error)
	DeleteRental(ctx context.Context, actor domain.Session, id string) error
	ToggleStatus(ctx context.Context, id string) (*domain.RentalRecord, error)
	ListOptions(ctx context.Context) (*domain.RentalOptions, error)
	OpenAttachment(ctx context.Context, key string) (io.ReadCloser, error)
}

type ReportService interface {
	ProjectReport(ctx context.Context, filter utils.RentalFilter) (*domain.CostReport, error)
	Export(ctx context.Context, filter utils.RentalFilter, format export.Format) (*domain.ExportFile, error)
}

type ShareService interface {
	CreateShareLink(ctx context.Context, supplier string) (string, error)
	ResolveShareLink(ctx context.Context, link string) (string, error)
}

type EmailService interface {
	SendPasswordReset(ctx context.Context, email, resetLink string, expiresAt time.Time) error
}
