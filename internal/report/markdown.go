package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/intelseed/internal/catalog"
)

// MarkdownWriter outputs the catalog as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the catalog in Markdown format.
func (w *MarkdownWriter) Write(c *catalog.Catalog) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Intelligence Catalog")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Table", "Entries", "Duplicates"},
		Rows: [][]string{
			{"research", strconv.Itoa(len(c.Research)), "skipped"},
			{"optimizations", strconv.Itoa(len(c.Optimizations)), "appended"},
		},
	})
	md.PlainText("")

	w.writeResearch(md, c.Research)
	w.writeOptimizations(md, c.Optimizations)

	return len(md.String()), md.Build()
}

// writeResearch writes the research table and one details block per abstract.
func (w *MarkdownWriter) writeResearch(md *markdown.Markdown, entries []catalog.ResearchEntry) {
	md.H2("Research")
	md.PlainText("")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			escapeCell(e.Title),
			"<" + e.SourceURL + ">",
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Title", "Source"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, e := range entries {
		md.Details(e.Title, e.Abstract)
	}
	md.PlainText("")
}

// writeOptimizations writes the optimization table.
func (w *MarkdownWriter) writeOptimizations(md *markdown.Markdown, entries []catalog.OptimizationEntry) {
	md.H2("Optimizations")
	md.PlainText("")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			escapeCell(e.Category),
			escapeCell(e.Description),
			escapeCell(truncateString(e.ImplementationNotes, 80)),
			escapeCell(e.Provenance),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Description", "Implementation", "Provenance"},
		Rows:   rows,
	})
}

// escapeCell escapes pipe characters, which would otherwise split a table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
