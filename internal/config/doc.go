// Package config provides configuration structures and utilities for intelseed.
// It defines where the intelligence database lives, how the connection is
// tuned, and how those settings are read from a YAML configuration file.
package config
