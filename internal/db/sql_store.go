package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps values in the kv_entries table of a gorm database
type SQLStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLStore wraps an opened and migrated database
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Get returns the value at key. Expired rows are deleted on the way out.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where(keyIs(key)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}

	if entry.ExpiresAt != nil && !s.now().Before(*entry.ExpiresAt) {
		if err := s.Remove(ctx, key); err != nil {
			return nil, err
		}
		return nil, ErrKeyNotFound
	}

	return entry.Value, nil
}

// Set upserts the value at key
func (s *SQLStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := Entry{
		Key:   key,
		Value: value,
	}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		entry.ExpiresAt = &expires
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}

// Remove deletes key; removing an absent key is not an error
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(keyIs(key)).Delete(&Entry{}).Error
}

// keyIs builds a quoted condition; "key" is a keyword in sqlite
func keyIs(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}
