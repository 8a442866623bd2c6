package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestAppendRow_CreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	appender, err := NewAppender(path, "")
	if err != nil {
		t.Fatalf("new appender: %v", err)
	}

	row := []any{"suresh", "2025-04-19T08:10:00Z", 900.0, 850.0, 50.0}
	if err := appender.AppendRow(context.Background(), row); err != nil {
		t.Fatalf("append: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("ledger")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "suresh" || rows[0][4] != "50" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}

func TestAppendRow_AppendsBelowExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	appender, err := NewAppender(path, "deliveries")
	if err != nil {
		t.Fatalf("new appender: %v", err)
	}

	first := []any{"ravi", "2025-04-19T08:00:00Z", 1000.0, 900.0, 100.0}
	second := []any{"suresh", "2025-04-19T09:00:00Z", 900.0, 850.0, 50.0}
	if err := appender.AppendRow(context.Background(), first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := appender.AppendRow(context.Background(), second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("deliveries")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][0] != "suresh" {
		t.Fatalf("second row author %q", rows[1][0])
	}
}

func TestAppendRow_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	appender, err := NewAppender(path, "")
	if err != nil {
		t.Fatalf("new appender: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := appender.AppendRow(ctx, []any{"x"}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNewAppender_EmptyPath(t *testing.T) {
	if _, err := NewAppender("", "ledger"); err == nil {
		t.Fatal("expected error for empty path")
	}
}
