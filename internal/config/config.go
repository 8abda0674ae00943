package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "intelseed"

	// DefaultDBFileName is the file name of the intelligence database inside
	// the XDG data directory.
	DefaultDBFileName = "intelligence.db"

	// DefaultBusyTimeout is how long SQLite waits on a lock held by another
	// process (e.g. a reader holding the file) before giving up.
	DefaultBusyTimeout = 5 * time.Second
)

// Config holds all configuration options for intelseed.
// It is populated from defaults, then the config file, then CLI flags, and
// passed down explicitly rather than kept in global state.
type Config struct {
	// DBPath is the path to the SQLite database file.
	// Defaults to DefaultDBPath().
	DBPath string

	// EnableWAL enables Write-Ahead Logging on the connection.
	EnableWAL bool

	// BusyTimeout is the SQLite busy timeout. Zero fails immediately on a lock.
	BusyTimeout time.Duration

	// CreateSchema creates the database file and tables before seeding.
	// When false, a missing file or table fails the run.
	CreateSchema bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// JSONLog switches log output from text to JSON.
	JSONLog bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DBPath:      DefaultDBPath(),
		EnableWAL:   true,
		BusyTimeout: DefaultBusyTimeout,
	}
}

// DefaultDBPath returns the default database location.
// On Linux: ~/.local/share/intelseed/intelligence.db
func DefaultDBPath() string {
	return filepath.Join(XDGDataDir(), DefaultDBFileName)
}

// XDGDataDir returns the XDG data directory for intelseed.
// On Linux: ~/.local/share/intelseed
// On macOS: ~/Library/Application Support/intelseed
// On Windows: %LOCALAPPDATA%\intelseed
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for intelseed.
// On Linux: ~/.config/intelseed
// On macOS: ~/Library/Application Support/intelseed
// On Windows: %APPDATA%\intelseed
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return ErrEmptyDBPath
	}

	if c.BusyTimeout < 0 {
		return ErrInvalidBusyTimeout
	}

	return nil
}
