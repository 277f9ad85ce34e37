package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/repository"
	"rental-tracker-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var rentalRowColumns = []string{"id", "supplier", "description", "sector", "daily_rate", "weekly_rate", "monthly_rate", "rate_option",
	"rental_date", "return_date", "project", "requester", "usage_type", "observations", "receipt_name", "receipt_key", "created_on", "updated_on"}

func TestRentalRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow("r-2", "Acme", "Excavator", "Civil", 100.0, 600.0, 2000.0, "daily",
				time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), nil, "Bridge", "Ana", "internal", "", nil, nil, now, now).
			AddRow("r-1", "Beta", "Crane", "Civil", 50.0, 300.0, 1000.0, "weekly",
				time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "Road", "Bo", "third-party", "ok", "receipt.pdf", "rentals/r-1/receipt.pdf", now, now)

		mock.ExpectQuery("SELECT (.+) FROM rentals ORDER BY rental_date DESC").WillReturnRows(rows)

		rentals, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, rentals, 2)
		assert.Equal(t, "r-2", rentals[0].ID)
		assert.Equal(t, domain.RentalStatusRented, rentals[0].Status())
		assert.Nil(t, rentals[0].Attachment)
		assert.Equal(t, domain.RateOptionWeekly, rentals[1].RateOption)
		assert.Equal(t, "2024-03-05", rentals[1].ReturnDate.String())
		assert.Equal(t, "rentals/r-1/receipt.pdf", rentals[1].Attachment.Key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals").WillReturnRows(sqlmock.NewRows(rentalRowColumns))

		rentals, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, rentals)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow("r-1", "Acme", "Excavator", "Civil", 100.0, 0.0, 0.0, "daily",
				time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), nil, "Bridge", "Ana", "internal", "", nil, nil, time.Now(), time.Now())
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").WithArgs("r-1").WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, "r-1")
		assert.NoError(t, err)
		assert.Equal(t, "Acme", rental.Supplier)
		assert.Equal(t, "2024-03-10", rental.RentalDate.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").WithArgs("missing").WillReturnRows(sqlmock.NewRows(rentalRowColumns))

		rental, err := repo.GetByID(ctx, "missing")
		assert.Nil(t, rental)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("MalformedID", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").WithArgs("not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		rental, err := repo.GetByID(ctx, "not-a-uuid")
		assert.Nil(t, rental)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rental := &domain.RentalRecord{
			ID:          "r-1",
			Supplier:    "Acme",
			Description: "Excavator",
			Sector:      "Civil",
			DailyRate:   100,
			RateOption:  domain.RateOptionDaily,
			RentalDate:  domain.NewDate(2024, time.March, 10),
			Project:     "Bridge",
			Requester:   "Ana",
			UsageType:   domain.UsageTypeInternal,
			Attachment:  &domain.Attachment{Name: "receipt.pdf", Key: "rentals/r-1/receipt.pdf"},
		}

		mock.ExpectExec("INSERT INTO rentals").
			WithArgs("r-1", "Acme", "Excavator", "Civil", 100.0, 0.0, 0.0, domain.RateOptionDaily,
				rental.RentalDate.Time, nil, "Bridge", "Ana", domain.UsageTypeInternal, "", "receipt.pdf", "rentals/r-1/receipt.pdf", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.False(t, rental.CreatedOn.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO rentals").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &domain.RentalRecord{ID: "r-1", RentalDate: domain.NewDate(2024, time.March, 10)})
		assert.True(t, errors.Is(err, repository.ErrDuplicate))
	})
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET").WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, &domain.RentalRecord{ID: "r-1", RentalDate: domain.NewDate(2024, time.March, 10)})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals SET").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &domain.RentalRecord{ID: "missing", RentalDate: domain.NewDate(2024, time.March, 10)})
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestRentalRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM rentals WHERE id = \\$1").WithArgs("r-1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "r-1"))

	mock.ExpectExec("DELETE FROM rentals WHERE id = \\$1").WithArgs("r-1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, errors.Is(repo.Delete(ctx, "r-1"), repository.ErrNotFound))

	mock.ExpectExec("DELETE FROM rentals WHERE id = \\$1").WithArgs("42").WillReturnError(&pq.Error{Code: "22P02"})
	assert.True(t, errors.Is(repo.Delete(ctx, "42"), repository.ErrNotFound))
}

func TestRentalRepository_SetReturnDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("MarkReturned", func(t *testing.T) {
		ret := domain.NewDate(2024, time.March, 12)
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow("r-1", "Acme", "Excavator", "Civil", 100.0, 0.0, 0.0, "daily",
				time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), ret.Time, "Bridge", "Ana", "internal", "", nil, nil, time.Now(), time.Now())
		mock.ExpectQuery("UPDATE rentals SET return_date = \\$1").
			WithArgs(ret.Time, sqlmock.AnyArg(), "r-1").
			WillReturnRows(rows)

		rental, err := repo.SetReturnDate(ctx, "r-1", &ret)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, rental.Status())
	})

	t.Run("ClearReturnDate", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow("r-1", "Acme", "Excavator", "Civil", 100.0, 0.0, 0.0, "daily",
				time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), nil, "Bridge", "Ana", "internal", "", nil, nil, time.Now(), time.Now())
		mock.ExpectQuery("UPDATE rentals SET return_date = \\$1").
			WithArgs(nil, sqlmock.AnyArg(), "r-1").
			WillReturnRows(rows)

		rental, err := repo.SetReturnDate(ctx, "r-1", nil)
		assert.NoError(t, err)
		assert.Nil(t, rental.ReturnDate)
		assert.Equal(t, domain.RentalStatusRented, rental.Status())
	})
}

func TestRentalRepository_ListAttachmentKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)

	mock.ExpectQuery("SELECT receipt_key FROM rentals").
		WillReturnRows(sqlmock.NewRows([]string{"receipt_key"}).AddRow("a.pdf").AddRow("b.png"))

	keys, err := repo.ListAttachmentKeys(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.png"}, keys)
}
