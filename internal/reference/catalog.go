package reference

import (
	"context"
	"fmt"
	"strings"

	"gstaudit/internal/port"
)

// minFuzzyLen is the shortest query that is matched by name containment.
const minFuzzyLen = 3

// Catalog provides in-memory lookups over the GST reference table.
// It is immutable after construction and safe for concurrent access.
// Where several entries match, the one loaded first wins.
type Catalog struct {
	entries []port.GSTRate
	byCode  map[string]int
	byName  map[string]int
}

// NewCatalog builds a Catalog from reference rows in load order.
func NewCatalog(entries []port.GSTRate) *Catalog {
	c := &Catalog{
		entries: make([]port.GSTRate, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for idx := range entries {
		e := entries[idx]
		e.Code = strings.TrimSpace(e.Code)
		c.entries = append(c.entries, e)
		pos := len(c.entries) - 1
		if e.Code != "" {
			if _, ok := c.byCode[e.Code]; !ok {
				c.byCode[e.Code] = pos
			}
		}
		if name := normalize(e.Name); name != "" {
			if _, ok := c.byName[name]; !ok {
				c.byName[name] = pos
			}
		}
	}
	return c
}

// FromRepository loads every reference row and builds a Catalog.
func FromRepository(ctx context.Context, repo port.GSTRateRepository) (*Catalog, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading gst reference rows: %w", err)
	}
	return NewCatalog(entries), nil
}

// Len returns the number of reference rows.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup resolves an HSN/SAC code or an item name.
// Codes match exactly, then fall back from 8→6→4 digit prefixes.
// Names match exactly (case-insensitive), then by containment in either
// the entry name or its category.
func (c *Catalog) Lookup(nameOrCode string) (port.GSTRate, bool) {
	q := normalize(nameOrCode)
	if q == "" || len(c.entries) == 0 {
		return port.GSTRate{}, false
	}

	if isNumeric(q) {
		if pos, ok := c.byCode[q]; ok {
			return c.entries[pos], true
		}
		for _, prefixLen := range []int{6, 4} {
			if len(q) > prefixLen {
				if pos, ok := c.byCode[q[:prefixLen]]; ok {
					return c.entries[pos], true
				}
			}
		}
		return port.GSTRate{}, false
	}

	if pos, ok := c.byName[q]; ok {
		return c.entries[pos], true
	}
	if len(q) < minFuzzyLen {
		return port.GSTRate{}, false
	}
	for idx := range c.entries {
		e := &c.entries[idx]
		if strings.Contains(normalize(e.Name), q) || strings.Contains(normalize(e.Category), q) {
			return *e, true
		}
	}
	return port.GSTRate{}, false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
