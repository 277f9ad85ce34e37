//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rental-tracker-backend/internal/config"
	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/repository"
	"rental-tracker-backend/internal/repository/postgres"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "config/config.test.yaml", "path to config file")
}

func prepareDB(t *testing.T) *sql.DB {
	t.Helper()

	// Logic to handle running from root vs package dir
	finalPath := configPath
	if _, err := os.Stat(finalPath); os.IsNotExist(err) {
		altPath := filepath.Join("..", "..", "..", configPath)
		if _, err := os.Stat(altPath); err == nil {
			finalPath = altPath
		}
	}

	cfg, err := config.Load(finalPath)
	require.NoError(t, err, "failed to load config from %s", finalPath)

	var db *sql.DB
	// Retry connection as DB might still be starting up
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(t, err, "failed to connect to database")
	require.NoError(t, postgres.RunMigrations(db))

	_, err = db.Exec("TRUNCATE rentals, password_resets, users")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIntegration_RentalLifecycle(t *testing.T) {
	db := prepareDB(t)
	store := postgres.NewStore(db)
	ctx := context.Background()

	r := &domain.RentalRecord{
		ID:          "5b0c2b7e-4c1e-4f57-9f4b-6a7d2f0e9a11",
		Supplier:    "Fornecedor & Cia",
		Description: "Scaffold",
		Sector:      "Civil",
		DailyRate:   50,
		RateOption:  domain.RateOptionDaily,
		RentalDate:  domain.NewDate(2024, time.July, 10),
		Project:     "Tower A",
		Requester:   "Ana",
		UsageType:   domain.UsageTypeInternal,
		Attachment:  &domain.Attachment{Name: "nota.pdf", Key: "rentals/5b0c/abc.pdf"},
	}
	require.NoError(t, store.RentalRepository.Create(ctx, r))

	got, err := store.RentalRepository.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Supplier, got.Supplier)
	assert.True(t, got.RentalDate.Equal(r.RentalDate))
	assert.Nil(t, got.ReturnDate)

	back := domain.NewDate(2024, time.July, 15)
	toggled, err := store.RentalRepository.SetReturnDate(ctx, r.ID, &back)
	require.NoError(t, err)
	require.NotNil(t, toggled.ReturnDate)
	assert.Equal(t, "2024-07-15", toggled.ReturnDate.String())

	keys, err := store.RentalRepository.ListAttachmentKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rentals/5b0c/abc.pdf"}, keys)

	require.NoError(t, store.RentalRepository.Delete(ctx, r.ID))
	_, err = store.RentalRepository.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntegration_UsersAndResets(t *testing.T) {
	db := prepareDB(t)
	store := postgres.NewStore(db)
	ctx := context.Background()

	u := &domain.UserAccount{Email: "Ana@Example.com", Role: domain.RoleUser, PasswordHash: "hash"}
	require.NoError(t, store.UserRepository.Create(ctx, u))
	assert.ErrorIs(t, store.UserRepository.Create(ctx, &domain.UserAccount{Email: "ana@example.com", Role: domain.RoleUser, PasswordHash: "x"}), repository.ErrDuplicate)

	now := time.Now().UTC().Truncate(time.Second)
	reset := &domain.PasswordReset{TokenHash: "abc", Email: u.Email, ExpiresOn: now.Add(time.Hour)}
	require.NoError(t, store.PasswordResetRepository.Create(ctx, reset))
	require.NoError(t, store.PasswordResetRepository.MarkUsed(ctx, "abc", now))
	assert.ErrorIs(t, store.PasswordResetRepository.MarkUsed(ctx, "abc", now), repository.ErrNotFound)

	removed, err := store.PasswordResetRepository.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
