package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/intelseed/internal/catalog"
)

// summaryWidth is the column budget for abstracts and notes in non-verbose output.
const summaryWidth = 72

// SimpleWriter outputs human-readable text.
// Long text fields are truncated unless verbose output is enabled.
type SimpleWriter struct {
	baseWriter

	// verbose prints abstracts and implementation notes in full.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables full-length text fields.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the catalog as plain text.
func (w *SimpleWriter) Write(c *catalog.Catalog) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Catalog: %d entries\n", c.Len())
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&sb, "Research (%d)\n", len(c.Research))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for i, e := range c.Research {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, e.Title)
		fmt.Fprintf(&sb, "   URL:      %s\n", e.SourceURL)
		fmt.Fprintf(&sb, "   Abstract: %s\n", w.text(e.Abstract))
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Optimizations (%d)\n", len(c.Optimizations))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for i, e := range c.Optimizations {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, e.Category, e.Description)
		fmt.Fprintf(&sb, "   Notes:      %s\n", w.text(e.ImplementationNotes))
		fmt.Fprintf(&sb, "   Provenance: %s\n", w.text(e.Provenance))
	}

	return io.WriteString(w.output, sb.String())
}

// text applies the width limit in non-verbose mode.
func (w *SimpleWriter) text(s string) string {
	if w.verbose {
		return s
	}
	return truncateString(s, summaryWidth)
}
