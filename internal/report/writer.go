package report

import (
	"io"

	"github.com/nao1215/intelseed/internal/catalog"
)

// Writer defines the interface for catalog output.
type Writer interface {
	// Write outputs the catalog to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(c *catalog.Catalog) (int, error)
}

// baseWriter provides common functionality for catalog writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// truncateString truncates a string to maxLen bytes with ellipsis.
// Catalog text is ASCII; multi-byte input may be cut mid-rune.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
