package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/repository"
	"rental-tracker-backend/internal/security"
)

type userService struct {
	userRepo     repository.UserRepository
	seedEmail    string
	seedPassword string
}

func NewUserService(userRepo repository.UserRepository, seedEmail, seedPassword string) UserService {
	return &userService{
		userRepo:     userRepo,
		seedEmail:    normalizeEmail(seedEmail),
		seedPassword: seedPassword,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.UserAccount, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || role == "" {
		return nil, validationError("email, password and role are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("invalid email %q", email)
	}
	if !role.Valid() {
		return nil, validationError("invalid role %q", role)
	}
	if len(password) < minPasswordLength {
		return nil, validationError("password must have at least %d characters", minPasswordLength)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.UserAccount{Email: email, Role: role, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "user "+email)
	}
	logger.Info("User created", "email", email, "role", role)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return validationError("email is required")
	}
	if s.seedEmail != "" && email == s.seedEmail {
		return validationError("the primary administrator cannot be deleted")
	}
	if err := s.userRepo.Delete(ctx, email); err != nil {
		return mapRepoError(err, "user "+email)
	}
	logger.Info("User deleted", "email", email)
	return nil
}

// EnsureSeedAdmin creates the configured administrator when it is missing.
func (s *userService) EnsureSeedAdmin(ctx context.Context) error {
	if s.seedEmail == "" {
		logger.Warn("No seed administrator configured")
		return nil
	}

	_, err := s.userRepo.GetByEmail(ctx, s.seedEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if s.seedPassword == "" {
		return fmt.Errorf("seed administrator %s does not exist and no seed password is configured", s.seedEmail)
	}

	if _, err := s.CreateUser(ctx, s.seedEmail, s.seedPassword, domain.RoleAdmin); err != nil && !errors.Is(err, ErrConflict) {
		return err
	}
	logger.Info("Seed administrator created", "email", s.seedEmail)
	return nil
}
