package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nao1215/intelseed/internal/catalog"
)

// SeedTx is the transaction of one seeding run.
// Nothing written through it is visible to other connections until Commit.
type SeedTx struct {
	tx *sql.Tx
}

// InsertResearchIfAbsent inserts a research entry stamped with the database's
// current UTC time. It reports false, with a nil error, when a unique
// constraint of the research table already holds a matching row.
//
// ON CONFLICT DO NOTHING without a conflict target absorbs only uniqueness
// conflicts, whichever columns the existing schema declares unique. NOT NULL
// and CHECK violations still fail.
func (s *SeedTx) InsertResearchIfAbsent(ctx context.Context, e catalog.ResearchEntry) (bool, error) {
	query := `
	INSERT INTO research (title, source_url, abstract, added_at)
	VALUES (?, ?, ?, datetime('now'))
	ON CONFLICT DO NOTHING
	`

	result, err := s.tx.ExecContext(ctx, query, e.Title, e.SourceURL, e.Abstract)
	if err != nil {
		return false, fmt.Errorf("failed to insert research %q: %w", e.Title, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected for research %q: %w", e.Title, err)
	}
	return n > 0, nil
}

// InsertOptimization appends an optimization entry. There is no duplicate check.
func (s *SeedTx) InsertOptimization(ctx context.Context, e catalog.OptimizationEntry) error {
	query := `
	INSERT INTO optimizations (category, description, implementation_notes, provenance)
	VALUES (?, ?, ?, ?)
	`

	_, err := s.tx.ExecContext(ctx, query,
		e.Category,
		e.Description,
		e.ImplementationNotes,
		e.Provenance,
	)
	if err != nil {
		return fmt.Errorf("failed to insert optimization %q: %w", e.Description, err)
	}
	return nil
}

// Commit makes every insert of the run visible at once.
func (s *SeedTx) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

// Rollback discards every insert of the run.
// Calling it after Commit is a no-op, so it can be deferred.
func (s *SeedTx) Rollback() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back seed transaction: %w", err)
	}
	return nil
}
