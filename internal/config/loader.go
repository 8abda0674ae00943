package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".intelseed"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DatabaseSection is the "database" section of the configuration file.
// Pointer fields distinguish "not set" from the zero value.
type DatabaseSection struct {
	// Path is the SQLite database file. A leading "~/" is expanded to the
	// user's home directory.
	Path string `yaml:"path,omitempty"`

	// WAL enables or disables Write-Ahead Logging.
	WAL *bool `yaml:"wal,omitempty"`

	// BusyTimeout is a Go duration string such as "5s".
	BusyTimeout *time.Duration `yaml:"busyTimeout,omitempty"`
}

// File represents the structure of the .intelseed configuration file.
type File struct {
	// Database configures the connection to the intelligence database.
	Database DatabaseSection `yaml:"database,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply copies every setting present in the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.Database.Path != "" {
		cfg.DBPath = expandHome(cf.Database.Path)
	}
	if cf.Database.WAL != nil {
		cfg.EnableWAL = *cf.Database.WAL
	}
	if cf.Database.BusyTimeout != nil {
		cfg.BusyTimeout = *cf.Database.BusyTimeout
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
// The path is returned unchanged if the home directory is unknown.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .intelseed in the current directory
// 3. Look for .intelseed in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
