package http_test

import (
	"context"
	"io"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/export"
	"rental-tracker-backend/internal/utils"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAccount), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.UserAccount, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserService) EnsureSeedAdmin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) ListRentals(ctx context.Context, filter utils.RentalFilter) ([]domain.PricedRental, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricedRental), args.Error(1)
}
func (m *MockRentalService) FindRentals(ctx context.Context, filter utils.RentalFilter) ([]domain.RentalRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id string) (*domain.RentalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}
func (m *MockRentalService) SaveRental(ctx context.Context, record *domain.RentalRecord, upload *domain.AttachmentUpload) (*domain.RentalRecord, error) {
	args := m.Called(ctx, record, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}
func (m *MockRentalService) DeleteRental(ctx context.Context, actor domain.Session, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
func (m *MockRentalService) ToggleStatus(ctx context.Context, id string) (*domain.RentalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRecord), args.Error(1)
}
func (m *MockRentalService) ListOptions(ctx context.Context) (*domain.RentalOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOptions), args.Error(1)
}
func (m *MockRentalService) OpenAttachment(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ProjectReport(ctx context.Context, filter utils.RentalFilter) (*domain.CostReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostReport), args.Error(1)
}
func (m *MockReportService) Export(ctx context.Context, filter utils.RentalFilter, format export.Format) (*domain.ExportFile, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportFile), args.Error(1)
}

// MockShareService
type MockShareService struct {
	mock.Mock
}

func (m *MockShareService) CreateShareLink(ctx context.Context, supplier string) (string, error) {
	args := m.Called(ctx, supplier)
	return args.String(0), args.Error(1)
}
func (m *MockShareService) ResolveShareLink(ctx context.Context, link string) (string, error) {
	args := m.Called(ctx, link)
	return args.String(0), args.Error(1)
}
