package jobs

import (
	"context"
	"errors"
	"fmt"

	"rental-tracker-backend/internal/logger"
)

func (jr *JobRunner) purgePasswordResets(ctx context.Context) (int64, error) {
	removed, err := jr.store.PasswordResetRepository.DeleteExpired(ctx, jr.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired password resets: %w", err)
	}
	return removed, nil
}

// purgeOrphanAttachments removes files that no rental references. Files
// younger than the grace period are kept since an upload may still be
// waiting for its row to commit.
func (jr *JobRunner) purgeOrphanAttachments(ctx context.Context) (int64, error) {
	keys, err := jr.store.RentalRepository.ListAttachmentKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list attachment keys: %w", err)
	}
	referenced := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		referenced[k] = struct{}{}
	}

	files, err := jr.files.ListFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stored files: %w", err)
	}

	cutoff := jr.now().Add(-jr.config.OrphanGracePeriod())
	var removed int64
	var errs []error
	for _, f := range files {
		if _, ok := referenced[f.Key]; ok {
			continue
		}
		if f.ModTime.After(cutoff) {
			continue
		}
		if err := jr.files.DeleteFile(ctx, f.Key); err != nil {
			logger.Warn("Failed to delete orphan attachment", "key", f.Key, "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Debug("Deleted orphan attachment", "key", f.Key, "size", f.Size)
		removed++
	}
	return removed, errors.Join(errs...)
}
