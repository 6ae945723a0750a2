// Package history persists REPL input in a SQLite database.
package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/segmentio/fasthash/fnv1a"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is an open history database.
type Store struct {
	db    *gorm.DB
	limit int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit keeps at most n live entries; older ones are trimmed on
// Append. Zero means unlimited.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// Open opens or creates the history database at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("history: migrate %s: %w", path, err)
	}

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Digest returns the hex fnv1a-64 digest used to detect repeated input.
func Digest(source string) string {
	return strconv.FormatUint(fnv1a.HashString64(source), 16)
}

// Append records source unless it is blank or identical to the most
// recent entry.
func (s *Store) Append(source string) error {
	source = strings.TrimRight(source, " \t\r\n")
	if strings.TrimSpace(source) == "" {
		return nil
	}
	digest := Digest(source)

	var last Entry
	err := s.db.Order("id desc").Limit(1).Take(&last).Error
	switch {
	case err == nil:
		if last.Digest == digest && last.Source == source {
			return nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("history: read last entry: %w", err)
	}

	if err := s.db.Create(&Entry{Source: source, Digest: digest}).Error; err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return s.trim()
}

// trim soft-deletes live entries beyond the limit, oldest first.
func (s *Store) trim() error {
	if s.limit <= 0 {
		return nil
	}
	var stale []int64
	if err := s.db.Model(&Entry{}).Order("id desc").Offset(s.limit).Pluck("id", &stale).Error; err != nil {
		return fmt.Errorf("history: trim: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}
	if err := s.db.Delete(&Entry{}, stale).Error; err != nil {
		return fmt.Errorf("history: trim: %w", err)
	}
	return nil
}

// Recent returns up to n live entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	var items []Entry
	if err := s.db.Order("id desc").Limit(n).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	return items, nil
}

// Count returns the number of live entries.
func (s *Store) Count() (int64, error) {
	var cnt int64
	if err := s.db.Model(&Entry{}).Count(&cnt).Error; err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return cnt, nil
}

// Purge permanently removes trimmed entries.
func (s *Store) Purge() error {
	if err := s.db.Unscoped().Where("deleted = ?", 1).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("history: purge: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
