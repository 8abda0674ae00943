package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/intelseed/internal/catalog"
	"github.com/nao1215/intelseed/internal/database"
)

// Tx is the write side of one seeding run.
type Tx interface {
	// InsertResearchIfAbsent returns false, with a nil error, when the entry
	// is already stored.
	InsertResearchIfAbsent(ctx context.Context, e catalog.ResearchEntry) (bool, error)
	// InsertOptimization appends the entry unconditionally.
	InsertOptimization(ctx context.Context, e catalog.OptimizationEntry) error
	Commit() error
	Rollback() error
}

// Store starts seeding transactions.
type Store interface {
	BeginSeed(ctx context.Context) (Tx, error)
}

// dbStore adapts *database.IntelDB to Store.
type dbStore struct {
	db *database.IntelDB
}

// FromDB returns a Store backed by the given database.
func FromDB(db *database.IntelDB) Store {
	return dbStore{db: db}
}

// BeginSeed implements Store.
func (s dbStore) BeginSeed(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginSeed(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Result describes what one run wrote.
type Result struct {
	// ResearchInserted is the number of research entries that were new.
	ResearchInserted int

	// ResearchSkipped is the number of research entries already present.
	ResearchSkipped int

	// OptimizationsInserted is the number of optimization rows appended.
	OptimizationsInserted int

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took, including the commit.
	Duration time.Duration
}

// Seeder loads a catalog into a Store.
type Seeder struct {
	store   Store
	catalog *catalog.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Seeder) {
		s.catalog = c
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// New creates a Seeder writing to store.
func New(store Store, opts ...Option) *Seeder {
	s := &Seeder{
		store:   store,
		catalog: catalog.Default(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run inserts the catalog in a single transaction.
//
// Research entries already present are counted as skipped. Any other error
// rolls back the transaction, so a failed run writes nothing.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	if err := s.catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	result := &Result{StartedAt: s.now()}

	tx, err := s.store.BeginSeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start seeding: %w", err)
	}
	defer func() {
		// No-op once committed.
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", "error", rbErr)
		}
	}()

	for _, e := range s.catalog.Research {
		inserted, err := tx.InsertResearchIfAbsent(ctx, e)
		if err != nil {
			return nil, err
		}
		if !inserted {
			result.ResearchSkipped++
			s.logger.Debug("research already present", "title", e.Title)
			continue
		}
		result.ResearchInserted++
		s.logger.Debug("research inserted", "title", e.Title, "url", e.SourceURL)
	}

	for _, e := range s.catalog.Optimizations {
		if err := tx.InsertOptimization(ctx, e); err != nil {
			return nil, err
		}
		result.OptimizationsInserted++
		s.logger.Debug("optimization inserted", "category", e.Category, "description", e.Description)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	result.Duration = s.now().Sub(result.StartedAt)
	s.logger.Info("seeding complete",
		"research_inserted", result.ResearchInserted,
		"research_skipped", result.ResearchSkipped,
		"optimizations_inserted", result.OptimizationsInserted,
		"duration", result.Duration,
	)
	return result, nil
}
