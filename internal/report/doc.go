// Package report renders the built-in catalog for the catalog command.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown tables for documentation
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably.
package report
