// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries over the blob
// store, used by the stats endpoint to report what is currently persisted.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/neolink-backend/internal/domain"
)

// BlobStats returns the stored size in bytes of the value under key and the
// time it was last written.
//
// When the key is absent, size is 0 and updatedAt is nil.
//
// Return values:
//   - size:      byte length of the stored value
//   - updatedAt: pointer to the last write time, or nil if no row
//   - err:       database error, if any
func BlobStats(ctx context.Context, db *gorm.DB, key string) (size int64, updatedAt *time.Time, err error) {
	var count int64
	if err = db.WithContext(ctx).Model(&domain.Blob{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		Size      int64
		UpdatedAt time.Time
	}
	if err = db.WithContext(ctx).Model(&domain.Blob{}).
		Select("length(value) AS size, updated_at").
		Where("key = ?", key).
		Limit(1).
		Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return row.Size, &row.UpdatedAt, nil
}
