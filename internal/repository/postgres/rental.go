package postgres

import (
	"context"
	"database/sql"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/repository"
)

const rentalColumns = `id, supplier, description, sector, daily_rate, weekly_rate, monthly_rate, rate_option,
	rental_date, return_date, project, requester, usage_type, observations, receipt_name, receipt_key, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.RentalRecord, error) {
	var (
		rt          domain.RentalRecord
		rentalDate  time.Time
		returnDate  sql.NullTime
		receiptName sql.NullString
		receiptKey  sql.NullString
	)
	err := row.Scan(&rt.ID, &rt.Supplier, &rt.Description, &rt.Sector, &rt.DailyRate, &rt.WeeklyRate, &rt.MonthlyRate, &rt.RateOption,
		&rentalDate, &returnDate, &rt.Project, &rt.Requester, &rt.UsageType, &rt.Observations, &receiptName, &receiptKey, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}

	rt.RentalDate = domain.DateOf(rentalDate)
	if returnDate.Valid {
		d := domain.DateOf(returnDate.Time)
		rt.ReturnDate = &d
	}
	if receiptName.Valid && receiptName.String != "" {
		rt.Attachment = &domain.Attachment{Name: receiptName.String, Key: receiptKey.String}
	}
	return &rt, nil
}

func nullableDate(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func attachmentColumns(a *domain.Attachment) (any, any) {
	if a == nil {
		return nil, nil
	}
	return a.Name, a.Key
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.RentalRecord, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY rental_date DESC, created_on DESC`
	logger.DatabaseCall("rentals.List", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("rentals.List", 0, err)
		return nil, err
	}
	defer rows.Close()

	rentals := make([]domain.RentalRecord, 0)
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("rentals.List", int64(len(rentals)), nil)
	return rentals, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.RentalRecord, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.RentalRecord) error {
	logger.EnterMethod("rentalRepository.Create", "supplier", rt.Supplier, "project", rt.Project)

	query := `INSERT INTO rentals (id, supplier, description, sector, daily_rate, weekly_rate, monthly_rate, rate_option,
	          rental_date, return_date, project, requester, usage_type, observations, receipt_name, receipt_key, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	now := time.Now().UTC()
	receiptName, receiptKey := attachmentColumns(rt.Attachment)

	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.Supplier, rt.Description, rt.Sector, rt.DailyRate, rt.WeeklyRate, rt.MonthlyRate, rt.RateOption,
		rt.RentalDate.Time, nullableDate(rt.ReturnDate), rt.Project, rt.Requester, rt.UsageType, rt.Observations, receiptName, receiptKey, now, now)
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.Create", err, "id", rt.ID)
		return mapError(err)
	}

	rt.CreatedOn = now
	rt.UpdatedOn = now
	logger.ExitMethod("rentalRepository.Create", "id", rt.ID)
	return nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.RentalRecord) error {
	logger.EnterMethod("rentalRepository.Update", "id", rt.ID)

	query := `UPDATE rentals SET supplier=$1, description=$2, sector=$3, daily_rate=$4, weekly_rate=$5, monthly_rate=$6, rate_option=$7,
	          rental_date=$8, return_date=$9, project=$10, requester=$11, usage_type=$12, observations=$13, receipt_name=$14, receipt_key=$15, updated_on=$16
	          WHERE id=$17`
	now := time.Now().UTC()
	receiptName, receiptKey := attachmentColumns(rt.Attachment)

	res, err := r.db.ExecContext(ctx, query, rt.Supplier, rt.Description, rt.Sector, rt.DailyRate, rt.WeeklyRate, rt.MonthlyRate, rt.RateOption,
		rt.RentalDate.Time, nullableDate(rt.ReturnDate), rt.Project, rt.Requester, rt.UsageType, rt.Observations, receiptName, receiptKey, now, rt.ID)
	if err := expectOneRow(res, err); err != nil {
		logger.ExitMethodWithError("rentalRepository.Update", err, "id", rt.ID)
		return err
	}

	rt.UpdatedOn = now
	logger.ExitMethod("rentalRepository.Update", "id", rt.ID)
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	return expectOneRow(res, err)
}

// SetReturnDate writes only the return date and returns the updated row.
func (r *rentalRepository) SetReturnDate(ctx context.Context, id string, returnDate *domain.Date) (*domain.RentalRecord, error) {
	query := `UPDATE rentals SET return_date = $1, updated_on = $2 WHERE id = $3 RETURNING ` + rentalColumns
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, nullableDate(returnDate), time.Now().UTC(), id))
	if err != nil {
		return nil, mapError(err)
	}
	return rt, nil
}

func (r *rentalRepository) ListAttachmentKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT receipt_key FROM rentals WHERE receipt_key IS NOT NULL AND receipt_key <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
