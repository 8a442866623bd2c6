package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	fuellog "fuelwatch-cloud/internal/fuellog/domain"
)

// LedgerRepository persists reconciled delivery events and summary
// snapshots. Appends are replay-safe: the delivery unique key covers the
// bounding readings, so re-recording a window never double-counts.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository constructs a repository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// RecordDeliveries appends delivery events for a window.
func (r *LedgerRepository) RecordDeliveries(ctx context.Context, window fuellog.Window, events []fuellog.DeliveryEvent) error {
	if r == nil || r.db == nil {
		return errors.New("ledger repo: nil db")
	}
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, event := range events {
		_, err = tx.ExecContext(ctx, `
INSERT INTO fuel_deliveries (
	window_key, from_author, from_logged_at, to_author, to_logged_at,
	stock_after_prev, stock_before_next, volume_taken, created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9
) ON CONFLICT (from_author, from_logged_at, to_author, to_logged_at) DO NOTHING`,
			window.TimeKey(),
			event.From.Author, event.From.LoggedAt.UTC(),
			event.To.Author, event.To.LoggedAt.UTC(),
			event.From.StockAfter, event.To.StockBefore,
			event.VolumeTaken, time.Now().UTC(),
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveSummary upserts the report snapshot for a window.
func (r *LedgerRepository) SaveSummary(ctx context.Context, report fuellog.SummaryReport) error {
	if r == nil || r.db == nil {
		return errors.New("ledger repo: nil db")
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO fuel_report_snapshots (
	window_key, window_start, window_end, total_volume_taken,
	event_count, reading_count, trip_count, created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8
) ON CONFLICT (window_key) DO UPDATE SET
	total_volume_taken = EXCLUDED.total_volume_taken,
	event_count = EXCLUDED.event_count,
	reading_count = EXCLUDED.reading_count,
	trip_count = EXCLUDED.trip_count,
	created_at = EXCLUDED.created_at`,
		report.Window.TimeKey(),
		report.Window.Start.UTC(), report.Window.End.UTC(),
		report.TotalVolumeTaken, report.EventCount,
		report.ReadingCount, report.Trips.Total(), time.Now().UTC(),
	)
	return err
}
