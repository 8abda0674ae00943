package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// IntelDB provides SQLite-based storage for research and optimization notes.
// It owns a single connection; SQLite supports one writer and the seeder
// never needs more.
type IntelDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures IntelDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file (and its directory) if it
	// doesn't exist. The seeder leaves this false so a mistyped path fails
	// instead of silently seeding an empty new file.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging so readers are not blocked while
	// the seeding transaction is open.
	EnableWAL bool

	// BusyTimeout is how long SQLite waits for a lock held by another process
	// before returning SQLITE_BUSY. Zero disables waiting.
	BusyTimeout time.Duration
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
		BusyTimeout:       5 * time.Second,
	}
}

// uriPathEscaper escapes the characters SQLite treats specially in the path
// part of a file: URI.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Open opens the IntelDB at the specified file path.
// If CreateIfNotExists is false and the file doesn't exist, an error wrapping
// ErrDatabaseNotFound is returned. Open never creates tables; see Migrate.
func Open(dbPath string, opts Options) (*IntelDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (run migrate or use --create-schema to create it)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// The query is only honoured for file: URIs. mode=rw refuses to create
	// a new file; mode=rwc allows it.
	mode := "rw"
	if opts.CreateIfNotExists {
		mode = "rwc"
	}
	dsn := "file:" + uriPathEscaper.Replace(dbPath) + "?mode=" + mode

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", opts.BusyTimeout.Milliseconds()),
	}
	if opts.EnableWAL {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(context.Background(), p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to exec %q: %w", p, err)
		}
	}

	return &IntelDB{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (idb *IntelDB) Close() error {
	if idb == nil || idb.db == nil {
		return nil
	}
	return idb.db.Close()
}

// Path returns the path to the database file.
func (idb *IntelDB) Path() string {
	return idb.dbPath
}

// Migrate applies all pending schema migrations. Applied versions are
// recorded in the schema_migrations table, so running it again is a no-op.
// It returns the number of migrations applied by this call.
func (idb *IntelDB) Migrate(ctx context.Context) (int, error) {
	if _, err := idb.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied := 0
	for i, stmts := range migrations {
		version := i + 1

		var exists int
		if err := idb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		tx, err := idb.db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("failed to begin migration %d: %w", version, err)
		}

		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return applied, fmt.Errorf("migration %d: %w", version, err)
			}
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", version, err)
		}
		applied++
	}

	return applied, nil
}

// CheckSchema verifies that every table the seeder writes to exists.
// It returns an error wrapping ErrSchemaMissing naming the first absent table.
func (idb *IntelDB) CheckSchema(ctx context.Context) error {
	for _, table := range requiredTables {
		var count int
		err := idb.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: table %q does not exist in %s", ErrSchemaMissing, table, idb.dbPath)
		}
	}
	return nil
}

// BeginSeed checks the schema and starts the transaction that a seeding run
// writes through. The caller must Commit or Rollback the returned SeedTx.
func (idb *IntelDB) BeginSeed(ctx context.Context) (*SeedTx, error) {
	if err := idb.CheckSchema(ctx); err != nil {
		return nil, err
	}

	tx, err := idb.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	return &SeedTx{tx: tx}, nil
}
