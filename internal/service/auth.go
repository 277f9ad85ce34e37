package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/repository"
	"rental-tracker-backend/internal/security"
)

const minPasswordLength = 6

type authService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	tokens    security.TokenManager
	emailSvc  EmailService
	publicURL string
	resetTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	tokens security.TokenManager,
	emailSvc EmailService,
	publicURL string,
	resetTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokens:    tokens,
		emailSvc:  emailSvc,
		publicURL: strings.TrimRight(publicURL, "/"),
		resetTTL:  resetTTL,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		logger.Warn("Login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	logger.Info("User logged in", "email", user.Email, "role", user.Role)
	return &domain.Session{Token: token, Email: user.Email, Role: user.Role, ExpiresAt: expiresAt}, nil
}

// CurrentSession resolves a bearer token to its session. The role comes from
// the stored account so demotions take effect immediately.
func (s *authService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	session := &domain.Session{Token: token, Email: user.Email, Role: user.Role}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// RequestPasswordReset never reveals whether the address has an account.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return validationError("email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Password reset requested for unknown email", "email", email)
			return nil
		}
		return err
	}

	token, tokenHash, err := security.NewResetToken()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.resetTTL)
	if err := s.resetRepo.Create(ctx, &domain.PasswordReset{TokenHash: tokenHash, Email: user.Email, ExpiresOn: expiresAt}); err != nil {
		return err
	}

	link := s.publicURL + "/#/reset-password?token=" + token
	if err := s.emailSvc.SendPasswordReset(ctx, user.Email, link, expiresAt); err != nil {
		logger.Error("Failed to send password reset email", "email", user.Email, "error", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	if len(newPassword) < minPasswordLength {
		return validationError("password must have at least %d characters", minPasswordLength)
	}

	tokenHash := security.HashResetToken(token)
	reset, err := s.resetRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	now := s.now()
	if reset.UsedOn != nil || now.After(reset.ExpiresOn) {
		return ErrInvalidToken
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.resetRepo.MarkUsed(ctx, tokenHash, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, reset.Email, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	logger.Info("Password reset completed", "email", reset.Email)
	return nil
}
