package target

import (
	"fmt"

	"github.com/polyforge/polyforge/internal/errors"
)

// CatalogReader defines the read-only query interface over the target
// catalog. External UIs that let a user choose targets consume this
// interface; nothing outside the package can mutate a catalog.
type CatalogReader interface {
	// List returns all targets in registration order
	List() []Target

	// Get retrieves a target by id
	Get(id string) (Target, error)

	// Position returns a target's registration index, used for
	// deterministic tie-breaking and result slot assignment
	Position(id string) (int, bool)
}

// Catalog is an immutable, explicitly constructed set of targets.
// Content is fixed at construction; adding or removing targets is a
// deployment-time operation, not a runtime one.
type Catalog struct {
	targets []Target
	index   map[string]int
}

// NewCatalog builds a catalog from the given targets, preserving order.
// Duplicate or empty ids are a programming error in the compiled-in
// catalog and are rejected.
func NewCatalog(targets ...Target) (*Catalog, error) {
	c := &Catalog{
		targets: make([]Target, len(targets)),
		index:   make(map[string]int, len(targets)),
	}
	for i, t := range targets {
		if t.ID == "" {
			return nil, fmt.Errorf("target at position %d has empty id", i)
		}
		if _, exists := c.index[t.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", t.ID)
		}
		c.targets[i] = t
		c.index[t.ID] = i
	}
	return c, nil
}

// List returns all targets in registration order. The returned slice is
// a copy; callers cannot mutate the catalog through it.
func (c *Catalog) List() []Target {
	out := make([]Target, len(c.targets))
	copy(out, c.targets)
	return out
}

// Get retrieves a target by id.
func (c *Catalog) Get(id string) (Target, error) {
	i, ok := c.index[id]
	if !ok {
		return Target{}, errors.NewTargetNotFoundError(id)
	}
	return c.targets[i], nil
}

// Position returns a target's registration index.
func (c *Catalog) Position(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Len returns the number of registered targets.
func (c *Catalog) Len() int {
	return len(c.targets)
}

// Subset returns a new catalog restricted to the given ids, preserving
// the parent catalog's registration order. Unknown ids are rejected.
func (c *Catalog) Subset(ids []string) (*Catalog, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; !ok {
			return nil, errors.NewTargetNotFoundError(id)
		}
		want[id] = true
	}

	var picked []Target
	for _, t := range c.targets {
		if want[t.ID] {
			picked = append(picked, t)
		}
	}
	return NewCatalog(picked...)
}

// Compile-time verification that Catalog implements CatalogReader
var _ CatalogReader = (*Catalog)(nil)
