package postgres

import (
	"context"
	"database/sql"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/repository"
)

type passwordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, pr *domain.PasswordReset) error {
	query := `INSERT INTO password_resets (token_hash, email, expires_on, created_on) VALUES ($1, $2, $3, $4)`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, pr.TokenHash, pr.Email, pr.ExpiresOn, now); err != nil {
		return mapError(err)
	}
	pr.CreatedOn = now
	return nil
}

func (r *passwordResetRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	pr := &domain.PasswordReset{}
	var usedOn sql.NullTime
	query := `SELECT token_hash, email, expires_on, used_on, created_on FROM password_resets WHERE token_hash = $1`
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&pr.TokenHash, &pr.Email, &pr.ExpiresOn, &usedOn, &pr.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	if usedOn.Valid {
		pr.UsedOn = &usedOn.Time
	}
	return pr, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, tokenHash string, usedOn time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used_on = $1 WHERE token_hash = $2 AND used_on IS NULL`, usedOn, tokenHash)
	return expectOneRow(res, err)
}

// DeleteExpired removes tokens that expired before the cutoff or were used.
func (r *passwordResetRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE expires_on < $1 OR used_on IS NOT NULL`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
