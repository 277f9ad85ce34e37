package postgres

import (
	"context"
	"database/sql"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.UserAccount) error {
	query := `INSERT INTO users (email, password_hash, role, created_on) VALUES ($1, $2, $3, $4) RETURNING created_on`
	return mapError(r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Role, time.Now().UTC()).Scan(&u.CreatedOn))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	u := &domain.UserAccount{}
	query := `SELECT email, password_hash, role, created_on FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.Email, &u.PasswordHash, &u.Role, &u.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email, role, created_on FROM users ORDER BY email ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0)
	for rows.Next() {
		var u domain.UserAccount
		if err := rows.Scan(&u.Email, &u.Role, &u.CreatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return expectOneRow(res, err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE LOWER(email) = LOWER($2)`, passwordHash, email)
	return expectOneRow(res, err)
}
