package database

// Table names used by the seeder.
const (
	tableResearch      = "research"
	tableOptimizations = "optimizations"
)

// requiredTables lists the tables that must exist before seeding.
var requiredTables = []string{tableResearch, tableOptimizations}

// migrations is an ordered list of SQL migration groups. Each group runs in a
// single transaction; its version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: research and optimization notes
	{
		`CREATE TABLE IF NOT EXISTS research (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			source_url TEXT,
			abstract TEXT,
			added_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS optimizations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT,
			description TEXT,
			implementation_notes TEXT,
			provenance TEXT
		)`,
	},
	// Migration 2: lookup indexes
	{
		`CREATE INDEX IF NOT EXISTS idx_research_added_at ON research(added_at)`,
		`CREATE INDEX IF NOT EXISTS idx_optimizations_category ON optimizations(category)`,
	},
}
