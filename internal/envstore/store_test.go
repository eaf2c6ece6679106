package envstore

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockStore creates a Store backed by sqlmock with automatic cleanup
// and expectation checking.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		sqlDB.Close()
	})
	return New(gdb), mock
}

var envVarColumns = []string{"key", "value", "updated_at"}

func TestGetValue_Found(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `env_vars` WHERE `key` = \\?").
		WithArgs("API_KEY", 1).
		WillReturnRows(sqlmock.NewRows(envVarColumns).AddRow("API_KEY", "secret", time.Now()))

	value, found, err := store.GetValue("API_KEY")
	if err != nil {
		t.Fatalf("GetValue() failed: %v", err)
	}
	if !found || value != "secret" {
		t.Errorf("Expected secret, got %q (found=%v)", value, found)
	}
}

func TestGetValue_Missing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `env_vars` WHERE `key` = \\?").
		WithArgs("MISSING", 1).
		WillReturnRows(sqlmock.NewRows(envVarColumns))

	value, found, err := store.GetValue("MISSING")
	if err != nil {
		t.Fatalf("a missing key should not surface an error, got: %v", err)
	}
	if found || value != "" {
		t.Errorf("Expected not found, got %q (found=%v)", value, found)
	}
}

func TestGetAllAsMap(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `env_vars`").
		WillReturnRows(sqlmock.NewRows(envVarColumns).
			AddRow("A", "1", time.Now()).
			AddRow("B", "2", time.Now()))

	vars, err := store.GetAllAsMap()
	if err != nil {
		t.Fatalf("GetAllAsMap() failed: %v", err)
	}
	if len(vars) != 2 || vars["A"] != "1" || vars["B"] != "2" {
		t.Errorf("Unexpected map: %v", vars)
	}
}

func TestUpsert(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `env_vars` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ev, err := store.Upsert("API_KEY", "v2")
	if err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if ev.Key != "API_KEY" || ev.Value != "v2" {
		t.Errorf("Unexpected entry: %+v", ev)
	}
}

func TestBulkUpsert_Empty(t *testing.T) {
	store, _ := newMockStore(t)

	// No SQL may be issued for an empty batch
	count, err := store.BulkUpsert(nil)
	if err != nil {
		t.Fatalf("BulkUpsert() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0, got %d", count)
	}
}

func TestBulkUpsert_TwoEntries(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `env_vars` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `env_vars` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	count, err := store.BulkUpsert(map[string]string{"A": "1", "B": "2"})
	if err != nil {
		t.Fatalf("BulkUpsert() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2, got %d", count)
	}
}

func TestDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `env_vars` WHERE `key` = \\?").
		WithArgs("GONE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := store.Delete("GONE")
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if !deleted {
		t.Error("Expected deleted=true")
	}
}

func TestDelete_MissingKey(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `env_vars` WHERE `key` = \\?").
		WithArgs("MISSING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := store.Delete("MISSING")
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if deleted {
		t.Error("Expected deleted=false for a missing key")
	}
}

func TestDeleteAll_CountsBeforeDeleting(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `env_vars`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `env_vars` WHERE 1 = 1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	count, err := store.DeleteAll()
	if err != nil {
		t.Fatalf("DeleteAll() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3, got %d", count)
	}
}

func TestCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `env_vars`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 7 {
		t.Errorf("Expected 7, got %d", count)
	}
}
