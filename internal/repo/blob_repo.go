// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the key-value blob store that backs the
// contact collection and the theme settings.
//
// Each key holds exactly one document. Writes replace the whole value in a
// single upsert statement, so readers never observe a partially written
// collection.
//
// Error semantics:
//   - When a key is absent, GetBlob returns ErrNotFound.
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/neolink-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetBlob returns the value stored under key, or ErrNotFound.
func GetBlob(ctx context.Context, db *gorm.DB, key string) ([]byte, error) {
	var b domain.Blob
	err := db.WithContext(ctx).
		Where("key = ?", key).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b.Value, nil
}

// PutBlob stores value under key, replacing any previous value.
func PutBlob(ctx context.Context, db *gorm.DB, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b := &domain.Blob{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(b).Error
}

// DeleteBlob removes key. Deleting an absent key is not an error.
func DeleteBlob(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&domain.Blob{}).Error
}

// BlobStore adapts the blob functions to a handle-bound key-value store, the
// shape consumed by the service layer.
type BlobStore struct {
	DB *gorm.DB
}

// NewBlobStore returns a BlobStore bound to db.
func NewBlobStore(db *gorm.DB) *BlobStore { return &BlobStore{DB: db} }

// Get proxies GetBlob.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return GetBlob(ctx, s.DB, key)
}

// Put proxies PutBlob.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	return PutBlob(ctx, s.DB, key, value)
}

// Stats proxies BlobStats.
func (s *BlobStore) Stats(ctx context.Context, key string) (int64, *time.Time, error) {
	return BlobStats(ctx, s.DB, key)
}
