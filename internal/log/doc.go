// Package log provides the slog loggers used by intelseed.
//
// Record text (abstracts, implementation notes) can run to several hundred
// characters. The CompactHandler wraps any slog.Handler and shortens long
// string attribute values so that each log record stays on one readable line.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("research inserted", "abstract", longText) // abstract is shortened
package log
