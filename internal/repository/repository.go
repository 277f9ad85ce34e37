package repository

import (
	"context"
	"errors"
	"time"

	"rental-tracker-backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type RentalRepository interface {
	List(ctx context.Context) ([]domain.RentalRecord, error)
	GetByID(ctx context.Context, id string) (*domain.RentalRecord, error)
	Create(ctx context.Context, rental *domain.RentalRecord) error
	Update(ctx context.Context, rental *domain.RentalRecord) error
	Delete(ctx context.Context, id string) error
	SetReturnDate(ctx context.Context, id string, returnDate *domain.Date) (*domain.RentalRecord, error)
	ListAttachmentKeys(ctx context.Context) ([]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.UserAccount) error
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	List(ctx context.Context) ([]domain.UserAccount, error)
	Delete(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, tokenHash string, usedOn time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
