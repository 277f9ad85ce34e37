package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/repository"
	"rental-tracker-backend/internal/storage"
	"rental-tracker-backend/internal/utils"

	"github.com/google/uuid"
)

// AttachmentPolicy bounds what SaveRental accepts as a receipt.
type AttachmentPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

func (p AttachmentPolicy) allows(contentType string) bool {
	if len(p.AllowedTypes) == 0 {
		return true
	}
	base := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	for _, t := range p.AllowedTypes {
		if strings.EqualFold(t, base) {
			return true
		}
	}
	return false
}

type rentalService struct {
	rentalRepo repository.RentalRepository
	store      storage.StorageInterface
	calendar   *utils.Calendar
	policy     AttachmentPolicy
	cacheTTL   time.Duration

	mu       sync.RWMutex
	snapshot []domain.RentalRecord
	loadedAt time.Time
	loaded   bool
	// generation changes on every mutation; a reload that overlaps one is
	// not cached.
	generation uint64
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	store storage.StorageInterface,
	calendar *utils.Calendar,
	policy AttachmentPolicy,
	cacheTTL time.Duration,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		store:      store,
		calendar:   calendar,
		policy:     policy,
		cacheTTL:   cacheTTL,
	}
}

// records returns the current collection, reloading it from the store when
// the snapshot is missing or older than the cache TTL.
func (s *rentalService) records(ctx context.Context) ([]domain.RentalRecord, error) {
	s.mu.RLock()
	if s.loaded && (s.cacheTTL <= 0 || s.calendar.Now().Sub(s.loadedAt) < s.cacheTTL) {
		current := s.snapshot
		s.mu.RUnlock()
		return current, nil
	}
	generation := s.generation
	s.mu.RUnlock()

	list, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	loaded := utils.Reduce(nil, utils.RentalsLoaded{Records: list})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return loaded, nil
	}
	s.snapshot = loaded
	s.loadedAt = s.calendar.Now()
	s.loaded = true
	return s.snapshot, nil
}

func (s *rentalService) apply(event utils.CollectionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.loaded {
		s.snapshot = utils.Reduce(s.snapshot, event)
	}
}

func (s *rentalService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loaded = false
	s.snapshot = nil
}

// withURL copies r and fills the attachment download URL.
func (s *rentalService) withURL(r domain.RentalRecord) domain.RentalRecord {
	if r.Attachment != nil {
		a := *r.Attachment
		a.URL = s.store.URL(a.Key)
		r.Attachment = &a
	}
	return r
}

func (s *rentalService) FindRentals(ctx context.Context, filter utils.RentalFilter) ([]domain.RentalRecord, error) {
	all, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	filtered := utils.FilterRentals(all, filter, s.calendar.Today())
	for i := range filtered {
		filtered[i] = s.withURL(filtered[i])
	}
	return filtered, nil
}

func (s *rentalService) ListRentals(ctx context.Context, filter utils.RentalFilter) ([]domain.PricedRental, error) {
	records, err := s.FindRentals(ctx, filter)
	if err != nil {
		return nil, err
	}
	return utils.PriceRentals(records, s.calendar.Today()), nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.RentalRecord, error) {
	r, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.invalidate()
		}
		return nil, mapRepoError(err, "rental "+id)
	}
	out := s.withURL(*r)
	return &out, nil
}

func validateRental(r *domain.RentalRecord) error {
	r.Supplier = strings.TrimSpace(r.Supplier)
	r.Description = strings.TrimSpace(r.Description)
	r.Sector = strings.TrimSpace(r.Sector)
	r.Project = strings.TrimSpace(r.Project)
	r.Requester = strings.TrimSpace(r.Requester)
	r.Observations = strings.TrimSpace(r.Observations)

	var missing []string
	if r.Supplier == "" {
		missing = append(missing, "supplier")
	}
	if r.Description == "" {
		missing = append(missing, "description")
	}
	if r.Sector == "" {
		missing = append(missing, "sector")
	}
	if r.RentalDate.IsZero() {
		missing = append(missing, "rental_date")
	}
	if r.Project == "" {
		missing = append(missing, "project")
	}
	if r.Requester == "" {
		missing = append(missing, "requester")
	}
	if len(missing) > 0 {
		return validationError("required fields missing: %s", strings.Join(missing, ", "))
	}

	if r.UsageType == "" {
		r.UsageType = domain.UsageTypeInternal
	}
	if !r.RateOption.Valid() {
		return validationError("invalid rate option %q", r.RateOption)
	}
	if !r.UsageType.Valid() {
		return validationError("invalid usage type %q", r.UsageType)
	}
	if r.DailyRate < 0 || r.WeeklyRate < 0 || r.MonthlyRate < 0 {
		return validationError("rates must not be negative")
	}
	return nil
}

// storeUpload writes the receipt and returns the attachment to persist.
func (s *rentalService) storeUpload(ctx context.Context, rentalID string, upload *domain.AttachmentUpload) (*domain.Attachment, error) {
	if upload.Filename == "" {
		return nil, validationError("attachment file name is required")
	}
	if !s.policy.allows(upload.ContentType) {
		return nil, validationError("attachment type %q is not accepted", upload.ContentType)
	}
	if s.policy.MaxBytes > 0 && upload.Size > s.policy.MaxBytes {
		return nil, validationError("attachment exceeds %d bytes", s.policy.MaxBytes)
	}

	key := storage.NewAttachmentKey(rentalID, upload.Filename)
	reader := upload.Content
	if s.policy.MaxBytes > 0 {
		reader = io.LimitReader(upload.Content, s.policy.MaxBytes+1)
	}
	n, err := s.store.SaveFile(ctx, key, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	if s.policy.MaxBytes > 0 && n > s.policy.MaxBytes {
		s.removeFile(ctx, key)
		return nil, validationError("attachment exceeds %d bytes", s.policy.MaxBytes)
	}
	return &domain.Attachment{Name: upload.Filename, Key: key}, nil
}

func (s *rentalService) removeFile(ctx context.Context, key string) {
	if err := s.store.DeleteFile(ctx, key); err != nil {
		logger.Warn("Failed to remove attachment", "key", key, "error", err)
	}
}

// SaveRental creates the record when it has no id and updates it otherwise.
// An update without upload keeps the stored attachment.
func (s *rentalService) SaveRental(ctx context.Context, record *domain.RentalRecord, upload *domain.AttachmentUpload) (*domain.RentalRecord, error) {
	logger.EnterMethod("rentalService.SaveRental", "id", record.ID, "supplier", record.Supplier)

	if err := validateRental(record); err != nil {
		logger.ExitMethodWithError("rentalService.SaveRental", err)
		return nil, err
	}

	isNew := record.ID == ""
	var previous *domain.Attachment
	if isNew {
		record.ID = uuid.New().String()
		record.Attachment = nil
	} else {
		existing, err := s.rentalRepo.GetByID(ctx, record.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.invalidate()
			}
			err = mapRepoError(err, "rental "+record.ID)
			logger.ExitMethodWithError("rentalService.SaveRental", err, "id", record.ID)
			return nil, err
		}
		previous = existing.Attachment
		record.Attachment = existing.Attachment
		record.CreatedOn = existing.CreatedOn
	}

	var stored *domain.Attachment
	if upload != nil {
		att, err := s.storeUpload(ctx, record.ID, upload)
		if err != nil {
			logger.ExitMethodWithError("rentalService.SaveRental", err, "id", record.ID)
			return nil, err
		}
		stored = att
		record.Attachment = att
	}

	var err error
	if isNew {
		err = s.rentalRepo.Create(ctx, record)
	} else {
		err = s.rentalRepo.Update(ctx, record)
	}
	if err != nil {
		if stored != nil {
			s.removeFile(ctx, stored.Key)
		}
		if errors.Is(err, repository.ErrNotFound) {
			s.invalidate()
		}
		err = mapRepoError(err, "rental "+record.ID)
		logger.ExitMethodWithError("rentalService.SaveRental", err, "id", record.ID)
		return nil, err
	}

	if stored != nil && previous != nil && previous.Key != stored.Key {
		s.removeFile(ctx, previous.Key)
	}

	s.apply(utils.RentalSaved{Record: *record})
	logger.ExitMethod("rentalService.SaveRental", "id", record.ID, "created", isNew)
	out := s.withURL(*record)
	return &out, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, actor domain.Session, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only administrators can delete rentals", ErrForbidden)
	}

	existing, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err := s.rentalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.invalidate()
		}
		return mapRepoError(err, "rental "+id)
	}

	s.apply(utils.RentalDeleted{ID: id})
	if existing != nil && existing.Attachment != nil {
		s.removeFile(ctx, existing.Attachment.Key)
	}
	logger.Info("Rental deleted", "id", id, "by", actor.Email)
	return nil
}

// ToggleStatus stamps today's date on a rented record and clears the return
// date of a returned one.
func (s *rentalService) ToggleStatus(ctx context.Context, id string) (*domain.RentalRecord, error) {
	current, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.invalidate()
		}
		return nil, mapRepoError(err, "rental "+id)
	}

	var returnDate *domain.Date
	if current.Status() == domain.RentalStatusRented {
		today := s.calendar.Today()
		returnDate = &today
	}

	updated, err := s.rentalRepo.SetReturnDate(ctx, id, returnDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.invalidate()
		}
		return nil, mapRepoError(err, "rental "+id)
	}

	s.apply(utils.RentalToggled{Record: *updated})
	out := s.withURL(*updated)
	return &out, nil
}

func (s *rentalService) ListOptions(ctx context.Context) (*domain.RentalOptions, error) {
	all, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, projects := utils.DistinctSuppliersAndProjects(all)
	return &domain.RentalOptions{Suppliers: suppliers, Projects: projects}, nil
}

func (s *rentalService) OpenAttachment(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.store.OpenFile(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, fmt.Errorf("%w: attachment %s", ErrNotFound, key)
		}
		return nil, err
	}
	return rc, nil
}
