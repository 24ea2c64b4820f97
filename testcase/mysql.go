package testcase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hairizuan-noorazman/testcase-service/database"
	"github.com/hairizuan-noorazman/testcase-service/internal/uuidutil"
	"github.com/hairizuan-noorazman/testcase-service/logger"
	"gorm.io/gorm"
)

// MySQLStore implements the Store interface using GORM. It runs against
// MySQL in production and SQLite in tests and local development.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new GORM-backed test case store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new test case in the database.
func (s *MySQLStore) Create(ctx context.Context, tc *TestCase) error {
	if err := tc.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(tc).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicateTitle
		}
		s.logger.Error(ctx, "failed to create test case", map[string]interface{}{
			"error": err.Error(),
			"title": tc.Title,
		})
		return storageError(err)
	}

	s.logger.Info(ctx, "test case created", map[string]interface{}{
		"test_case_id": tc.ID,
		"title":        tc.Title,
		"priority":     tc.Priority,
		"status":       tc.Status,
	})

	return nil
}

// GetByID retrieves a test case by its ID. Malformed IDs are reported as
// not found.
func (s *MySQLStore) GetByID(ctx context.Context, id string) (*TestCase, error) {
	normalized, ok := uuidutil.Normalize(id)
	if !ok {
		return nil, ErrTestCaseNotFound
	}

	var tc TestCase
	err := s.db.WithContext(ctx).
		Where("id = ?", normalized).
		First(&tc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestCaseNotFound
		}
		s.logger.Error(ctx, "failed to get test case by ID", map[string]interface{}{
			"error":        err.Error(),
			"test_case_id": id,
		})
		return nil, storageError(err)
	}

	return &tc, nil
}

// ExistsByTitle reports whether a test case with the exact title exists.
func (s *MySQLStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&TestCase{}).
		Where("title = ?", title).
		Limit(1).
		Count(&count).Error

	if err != nil {
		s.logger.Error(ctx, "failed to check test case title", map[string]interface{}{
			"error": err.Error(),
			"title": title,
		})
		return false, storageError(err)
	}

	return count > 0, nil
}

// Update updates a test case with the given setters.
func (s *MySQLStore) Update(ctx context.Context, id string, setters ...UpdateSetter) (*TestCase, error) {
	tc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, setter := range setters {
		if err := setter(tc); err != nil {
			return nil, err
		}
	}

	// Must not insert: a row deleted since the load stays deleted.
	result := s.db.WithContext(ctx).
		Model(tc).
		Select("*").
		Omit("id", "created_on").
		Updates(tc)

	if result.Error != nil {
		if database.IsDuplicateKey(result.Error) {
			return nil, ErrDuplicateTitle
		}
		s.logger.Error(ctx, "failed to update test case", map[string]interface{}{
			"error":        result.Error.Error(),
			"test_case_id": tc.ID,
		})
		return nil, storageError(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrTestCaseNotFound
	}

	s.logger.Info(ctx, "test case updated", map[string]interface{}{
		"test_case_id": tc.ID,
		"fields":       len(setters),
	})

	return tc, nil
}

// Delete removes a test case by ID.
func (s *MySQLStore) Delete(ctx context.Context, id string) error {
	normalized, ok := uuidutil.Normalize(id)
	if !ok {
		return ErrTestCaseNotFound
	}

	result := s.db.WithContext(ctx).
		Where("id = ?", normalized).
		Delete(&TestCase{})

	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete test case", map[string]interface{}{
			"error":        result.Error.Error(),
			"test_case_id": id,
		})
		return storageError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrTestCaseNotFound
	}

	s.logger.Info(ctx, "test case deleted", map[string]interface{}{
		"test_case_id": normalized,
	})

	return nil
}

// List retrieves a page of test cases matching the filter, newest first.
func (s *MySQLStore) List(ctx context.Context, filter Filter, limit, offset int) ([]*TestCase, error) {
	var testCases []*TestCase
	err := s.filtered(ctx, filter).
		Order("created_on DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&testCases).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list test cases", map[string]interface{}{
			"error":  err.Error(),
			"filter": filter.Kind(),
			"limit":  limit,
			"offset": offset,
		})
		return nil, storageError(err)
	}

	return testCases, nil
}

// Count returns the number of test cases matching the filter.
func (s *MySQLStore) Count(ctx context.Context, filter Filter) (int, error) {
	var count int64
	err := s.filtered(ctx, filter).Count(&count).Error

	if err != nil {
		s.logger.Error(ctx, "failed to count test cases", map[string]interface{}{
			"error":  err.Error(),
			"filter": filter.Kind(),
		})
		return 0, storageError(err)
	}

	return int(count), nil
}

func (s *MySQLStore) filtered(ctx context.Context, filter Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&TestCase{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	return q
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}
