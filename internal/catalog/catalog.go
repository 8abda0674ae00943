package catalog

import (
	"fmt"
)

// research is the research batch loaded by every seeding run.
var research = []ResearchEntry{
	{
		Title:     "MAC-AMP: Closed-Loop Multi-Agent Peptide Design",
		SourceURL: "https://arxiv.org/abs/2602.15836",
		Abstract:  "A closed-loop multi-agent collaboration system for antimicrobial peptide design. Uses iterative feedback to refine molecular structures.",
	},
	{
		Title:     "MemSkill: Evolvable Memory for LLM Agents",
		SourceURL: "https://huggingface.co/papers/trending",
		Abstract:  "Learnable memory system with controller-executor-designer components. Dynamically selects/refines memory operations.",
	},
	{
		Title:     "Memory & Continual Learning Gains in Repo-Level Context",
		SourceURL: "https://www.llmwatch.com/p/ai-agents-of-the-week-papers-you-43c",
		Abstract:  "Research revealing the impact of specific repository-level context files on coding agent performance.",
	},
}

// optimizations is the optimization batch loaded by every seeding run.
var optimizations = []OptimizationEntry{
	{
		Category:            "Physics",
		Description:         "Parallel Transport Frames for Track Banking",
		ImplementationNotes: "Use Frenet-Serret or Parallel Transport frames to calculate dynamic banking angles in curvilinear paths.",
		Provenance:          "Zero ball-phasing in 100 consecutive turns",
	},
	{
		Category:            "Physics",
		Description:         "Centripetal Position Clamping",
		ImplementationNotes: "Hard-snapping bodies to a center-line if radial distance exceeds a threshold to prevent tunneling.",
		Provenance:          "100% containment regardless of velocity",
	},
}

// Catalog is a pair of record batches to be seeded.
type Catalog struct {
	// Research entries are inserted only when absent.
	Research []ResearchEntry `json:"research"`

	// Optimizations are appended on every run.
	Optimizations []OptimizationEntry `json:"optimizations"`
}

// Default returns the built-in catalog, normalized.
// Every call returns new slices; modifying them does not affect later calls.
func Default() *Catalog {
	c := &Catalog{
		Research:      make([]ResearchEntry, len(research)),
		Optimizations: make([]OptimizationEntry, len(optimizations)),
	}
	for i, e := range research {
		c.Research[i] = e.Normalize()
	}
	for i, e := range optimizations {
		c.Optimizations[i] = e.Normalize()
	}
	return c
}

// Validate checks every entry and rejects duplicate research titles.
// It returns the first problem found, annotated with the entry index.
func (c *Catalog) Validate() error {
	seen := make(map[string]int, len(c.Research))
	for i, e := range c.Research {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("research[%d]: %w", i, err)
		}
		title := normalizeText(e.Title)
		if j, ok := seen[title]; ok {
			return fmt.Errorf("research[%d]: %w: %q (first seen at research[%d])", i, ErrDuplicateTitle, e.Title, j)
		}
		seen[title] = i
	}

	for i, e := range c.Optimizations {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("optimizations[%d]: %w", i, err)
		}
	}

	return nil
}

// Len returns the total number of entries in both batches.
func (c *Catalog) Len() int {
	return len(c.Research) + len(c.Optimizations)
}
