package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Stats summarizes the contents of the seeded tables.
type Stats struct {
	// ResearchRows is the number of rows in the research table.
	ResearchRows int

	// OptimizationRows is the number of rows in the optimizations table.
	OptimizationRows int

	// OldestResearchAt is the earliest added_at value, or the zero time when
	// the table is empty.
	OldestResearchAt time.Time

	// LatestResearchAt is the latest added_at value, or the zero time when
	// the table is empty.
	LatestResearchAt time.Time
}

// Stats returns row counts and the added_at range of the research table.
// It must not be called while a SeedTx is open: the single connection is
// held by the transaction.
func (idb *IntelDB) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	if err := idb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM research").Scan(&st.ResearchRows); err != nil {
		return Stats{}, fmt.Errorf("failed to count research rows: %w", err)
	}
	if err := idb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM optimizations").Scan(&st.OptimizationRows); err != nil {
		return Stats{}, fmt.Errorf("failed to count optimization rows: %w", err)
	}

	var oldest, latest sql.NullString
	if err := idb.db.QueryRowContext(ctx, "SELECT MIN(added_at), MAX(added_at) FROM research").Scan(&oldest, &latest); err != nil {
		return Stats{}, fmt.Errorf("failed to read research timestamps: %w", err)
	}
	if oldest.Valid {
		st.OldestResearchAt = parseTimestamp(oldest.String)
	}
	if latest.Valid {
		st.LatestResearchAt = parseTimestamp(latest.String)
	}

	return st, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite datetime('now') format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
