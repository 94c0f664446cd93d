package migration

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrations?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("raw handle: %v", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("second run: %v", err)
	}

	for _, table := range []string{"shops", "invoices", "invoice_events", "audit_logs"} {
		var count int
		err := sqlDB.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}

	var applied int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied != 4 {
		t.Fatalf("expected 4 applied migrations, got %d", applied)
	}
}
