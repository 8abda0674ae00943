// Package main provides the entry point for the intelseed CLI.
//
// intelseed loads a fixed set of research notes and optimization notes into
// a local SQLite intelligence database. Research notes that are already
// present are skipped; optimization notes are appended on every run.
//
// Usage:
//
//	intelseed
//	intelseed --db ./intelligence.db
//	intelseed migrate --db ./intelligence.db
//
// See --help for all available options.
package main

// main is the entry point for intelseed.
func main() {
	Execute()
}
