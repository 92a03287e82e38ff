// Package topics owns the subtopic catalog and the LLM-backed labeler that
// tags each question with the catalog entries it covers. Coverage analysis
// runs over these tags.
package topics

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the ordered list of subtopic names. Indices into the catalog
// are the subtopic ids that appear in turn records.
type Catalog struct {
	Names []string
}

// Load reads a catalog from a JSON file holding an array of strings.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	return &Catalog{Names: names}, nil
}

// Default returns the built-in distributed systems catalog, used when no
// catalog file is given.
func Default() *Catalog {
	return &Catalog{Names: []string{
		"Client-server architecture",
		"Remote procedure calls",
		"Message-oriented middleware",
		"Publish-subscribe systems",
		"Logical clocks and event ordering",
		"Distributed mutual exclusion",
		"Leader election",
		"Consensus and replication",
		"Fault tolerance and failure models",
		"Distributed transactions",
	}}
}

// Size returns the number of subtopics.
func (c *Catalog) Size() int {
	return len(c.Names)
}

// Name returns the subtopic name for an id, or empty if out of range.
func (c *Catalog) Name(id int) string {
	if id < 0 || id >= len(c.Names) {
		return ""
	}
	return c.Names[id]
}
