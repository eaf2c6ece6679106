// Package envstore is the durable side of the environment variable
// mirror: a gorm adapter over the env_vars table.
package envstore

import (
	"errors"
	"fmt"

	"bidtrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store provides access to the env_vars table
type Store struct {
	db *gorm.DB
}

// New creates a new Store
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get retrieves a single entry by key, nil if absent
func (s *Store) Get(key string) (*model.EnvVar, error) {
	var ev model.EnvVar
	if err := s.db.Where("`key` = ?", key).First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get env var: %w", err)
	}
	return &ev, nil
}

// GetValue returns only the value for the given key. The second return
// value reports whether the key exists.
func (s *Store) GetValue(key string) (string, bool, error) {
	ev, err := s.Get(key)
	if err != nil {
		return "", false, err
	}
	if ev == nil {
		return "", false, nil
	}
	return ev.Value, true, nil
}

// GetAll fetches every stored entry
func (s *Store) GetAll() ([]model.EnvVar, error) {
	var vars []model.EnvVar
	if err := s.db.Find(&vars).Error; err != nil {
		return nil, fmt.Errorf("failed to list env vars: %w", err)
	}
	return vars, nil
}

// GetAllAsMap returns all entries as a key/value mapping
func (s *Store) GetAllAsMap() (map[string]string, error) {
	vars, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(vars))
	for _, ev := range vars {
		out[ev.Key] = ev.Value
	}
	return out, nil
}

// Create inserts a new entry. A duplicate key surfaces as the store's
// uniqueness violation.
func (s *Store) Create(key, value string) (*model.EnvVar, error) {
	ev := &model.EnvVar{Key: key, Value: value}
	if err := s.db.Create(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to create env var: %w", err)
	}
	return ev, nil
}

// Update updates an existing entry, nil if absent
func (s *Store) Update(key, value string) (*model.EnvVar, error) {
	ev, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, nil
	}

	ev.Value = value
	if err := s.db.Save(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to update env var: %w", err)
	}
	return ev, nil
}

// Upsert creates or updates an entry in a single statement
func (s *Store) Upsert(key, value string) (*model.EnvVar, error) {
	return upsert(s.db, key, value)
}

// upsert runs against the given handle so that BulkUpsert can reuse it
// inside a transaction.
func upsert(tx *gorm.DB, key, value string) (*model.EnvVar, error) {
	ev := &model.EnvVar{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert env var: %w", err)
	}
	return ev, nil
}

// BulkUpsert persists multiple entries in one transaction and returns the
// number processed. An empty map returns 0 without opening a transaction.
func (s *Store) BulkUpsert(vars map[string]string) (int, error) {
	if len(vars) == 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range vars {
			if _, err := upsert(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(vars), nil
}

// Delete removes a single entry, reporting whether a row was removed
func (s *Store) Delete(key string) (bool, error) {
	res := s.db.Where("`key` = ?", key).Delete(&model.EnvVar{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete env var: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every entry and returns how many were deleted.
// The count is taken before deletion.
func (s *Store) DeleteAll() (int64, error) {
	count, err := s.Count()
	if err != nil {
		return 0, err
	}
	if err := s.db.Where("1 = 1").Delete(&model.EnvVar{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete env vars: %w", err)
	}
	return count, nil
}

// Count returns the number of stored entries
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.EnvVar{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count env vars: %w", err)
	}
	return count, nil
}
