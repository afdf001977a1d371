package database

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDSN(t *testing.T) {
	got := DSN("app", "pw", "db", "3306", "booking")
	for _, want := range []string{"app:pw@tcp(db:3306)/booking", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(got, want) {
			t.Fatalf("DSN %q missing %q", got, want)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	script := "-- header\nCREATE TABLE a (\n  id INT\n);\n\nCREATE TABLE b (id INT);\nSELECT 1"
	stmts := SplitStatements(script)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements: %q", len(stmts), stmts)
	}
	if !strings.HasPrefix(stmts[0], "CREATE TABLE a") || strings.HasSuffix(stmts[0], ";") {
		t.Fatalf("first statement = %q", stmts[0])
	}
	if stmts[2] != "SELECT 1" {
		t.Fatalf("trailing statement = %q", stmts[2])
	}
}

func TestEmbeddedSchemaDeclaresOneBookingPerUser(t *testing.T) {
	raw, err := migrationFS.ReadFile("migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if !strings.Contains(string(raw), "UNIQUE KEY uq_bookings_user (user_id)") {
		t.Fatalf("bookings.user_id must be unique")
	}
}

func TestMigrateExecutesEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	raw, _ := migrationFS.ReadFile("migrations/0001_init.sql")
	for range SplitStatements(string(raw)) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
