package testcase

import (
	"testing"

	"github.com/hairizuan-noorazman/testcase-service/logger"
	"github.com/hairizuan-noorazman/testcase-service/testutil"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and test case store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, *MySQLStore, *logger.TestLogger) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &TestCase{})

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, log)

	return db, store, log
}

// setupTestService wires a service over a fresh store.
func setupTestService(t *testing.T, cfg ServiceConfig) (*gorm.DB, *Service, *logger.TestLogger) {
	db, store, log := setupTestStore(t)
	return db, NewService(store, log, cfg), log
}

// createTestCase creates a test case with default values.
func createTestCase(title string, status Status, priority Priority) *TestCase {
	return &TestCase{
		Title:       title,
		Description: "Description for " + title,
		Status:      status,
		Priority:    priority,
	}
}

func statusPtr(s Status) *Status       { return &s }
func priorityPtr(p Priority) *Priority { return &p }
