package postgres

import (
	"database/sql"
	"errors"

	"rental-tracker-backend/internal/repository"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// invalidTextRepresentation is raised when an id is not a valid UUID.
const invalidTextRepresentation = "22P02"

type Store struct {
	db *sql.DB
	repository.RentalRepository
	repository.UserRepository
	repository.PasswordResetRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		RentalRepository:        NewRentalRepository(db),
		UserRepository:          NewUserRepository(db),
		PasswordResetRepository: NewPasswordResetRepository(db),
	}
}

// DB exposes the underlying pool for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return repository.ErrDuplicate
		case invalidTextRepresentation:
			return repository.ErrNotFound
		}
	}
	return err
}

// expectOneRow turns a zero rows-affected result into ErrNotFound.
func expectOneRow(res sql.Result, err error) error {
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
