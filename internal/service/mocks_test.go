package service_test

import (
	"context"
	"time"

	"rental-tracker-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) List(ctx context.Context) ([]domain.RentalRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.RentalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}
func (m *MockRentalRepo) Create(ctx context.Context, r *domain.RentalRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) Update(ctx context.Context, r *domain.RentalRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) SetReturnDate(ctx context.Context, id string, returnDate *domain.Date) (*domain.RentalRecord, error) {
	args := m.Called(ctx, id, returnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}
func (m *MockRentalRepo) ListAttachmentKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.UserAccount) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.UserAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserAccount), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

// MockPasswordResetRepo
type MockPasswordResetRepo struct {
	mock.Mock
}

func (m *MockPasswordResetRepo) Create(ctx context.Context, pr *domain.PasswordReset) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}
func (m *MockPasswordResetRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordReset), args.Error(1)
}
func (m *MockPasswordResetRepo) MarkUsed(ctx context.Context, tokenHash string, usedOn time.Time) error {
	args := m.Called(ctx, tokenHash, usedOn)
	return args.Error(0)
}
func (m *MockPasswordResetRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, email, resetLink string, expiresAt time.Time) error {
	args := m.Called(ctx, email, resetLink, expiresAt)
	return args.Error(0)
}
