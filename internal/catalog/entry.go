package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ResearchEntry is a research note stored in the research table.
// The added_at column is not part of the entry: the database sets it at
// insert time.
type ResearchEntry struct {
	// Title is the human-readable title of the paper or article.
	// The research table declares it UNIQUE.
	Title string `json:"title"`

	// SourceURL is where the research was found.
	SourceURL string `json:"sourceUrl"`

	// Abstract is a short summary of the research.
	Abstract string `json:"abstract"`
}

// Normalize returns a copy of the entry with surrounding whitespace removed
// and all text converted to Unicode NFC, so that visually identical titles
// collide on the unique constraint.
func (e ResearchEntry) Normalize() ResearchEntry {
	return ResearchEntry{
		Title:     normalizeText(e.Title),
		SourceURL: strings.TrimSpace(e.SourceURL),
		Abstract:  normalizeText(e.Abstract),
	}
}

// Validate checks that the entry can be inserted.
func (e ResearchEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}

	u, err := url.Parse(strings.TrimSpace(e.SourceURL))
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidSourceURL, e.SourceURL)
	}

	return nil
}

// OptimizationEntry is an implementation note stored in the optimizations table.
// Optimization entries have no natural key; every insert appends a row.
type OptimizationEntry struct {
	// Category groups related notes (e.g. "Physics").
	Category string `json:"category"`

	// Description names the technique.
	Description string `json:"description"`

	// ImplementationNotes explains how the technique is applied.
	ImplementationNotes string `json:"implementationNotes"`

	// Provenance records the evidence the technique works.
	Provenance string `json:"provenance"`
}

// Normalize returns a copy of the entry with NFC text and a title-cased category.
func (e OptimizationEntry) Normalize() OptimizationEntry {
	return OptimizationEntry{
		Category:            titleCase(normalizeText(e.Category)),
		Description:         normalizeText(e.Description),
		ImplementationNotes: normalizeText(e.ImplementationNotes),
		Provenance:          normalizeText(e.Provenance),
	}
}

// Validate checks that the entry can be inserted.
func (e OptimizationEntry) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// normalizeText trims surrounding whitespace and composes the string to NFC.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// titleCase capitalizes each word of a category name.
// cases.Caser is stateful, so a new one is created per call.
func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}
