package catalog

import (
	"fmt"
	"strings"
)

// Catalog is an append-only, immutable collection of assertions.
// Composition returns a fresh catalog; an existing one never changes.
type Catalog struct {
	assertions []*Assertion
	selectors  map[string]*Assertion
}

// DuplicateAssertionError reports two assertions whose phrase aliases
// and slot shapes collide. This is a catalog-authoring bug, detected at
// registration time, never at call time.
type DuplicateAssertionError struct {
	First  *Assertion
	Second *Assertion
}

func (e *DuplicateAssertionError) Error() string {
	return fmt.Sprintf("duplicate assertion: %q collides with %q", e.Second.ID(), e.First.ID())
}

// NewCatalog builds a catalog, rejecting colliding assertions.
func NewCatalog(assertions ...*Assertion) (*Catalog, error) {
	c := &Catalog{selectors: make(map[string]*Assertion)}
	for _, a := range assertions {
		if err := c.add(a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustCatalog is NewCatalog for statically known catalogs.
func MustCatalog(assertions ...*Assertion) *Catalog {
	c, err := NewCatalog(assertions...)
	if err != nil {
		panic(err)
	}
	return c
}

// Merge composes catalogs into a new one, preserving registration order
// for diagnostics. Composition is associative; collisions across the
// inputs raise DuplicateAssertionError.
func Merge(cats ...*Catalog) (*Catalog, error) {
	merged := &Catalog{selectors: make(map[string]*Assertion)}
	for _, cat := range cats {
		for _, a := range cat.assertions {
			if err := merged.add(a); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

func (c *Catalog) add(a *Assertion) error {
	for _, key := range selectorKeys(a) {
		if first, taken := c.selectors[key]; taken {
			return &DuplicateAssertionError{First: first, Second: a}
		}
		c.selectors[key] = a
	}
	c.assertions = append(c.assertions, a)
	return nil
}

// All returns every assertion in registration order.
func (c *Catalog) All() []*Assertion {
	out := make([]*Assertion, len(c.assertions))
	copy(out, c.assertions)
	return out
}

// Sync returns the assertions runnable from the synchronous entry point.
func (c *Catalog) Sync() []*Assertion {
	var out []*Assertion
	for _, a := range c.assertions {
		if !a.IsAsync() {
			out = append(out, a)
		}
	}
	return out
}

// Async returns the suspension-bearing assertions.
func (c *Catalog) Async() []*Assertion {
	var out []*Assertion
	for _, a := range c.assertions {
		if a.IsAsync() {
			out = append(out, a)
		}
	}
	return out
}

// Len reports the number of registered assertions.
func (c *Catalog) Len() int { return len(c.assertions) }

// selectorKeys enumerates every way a call can select this assertion:
// the cartesian product of phrase aliases, with slot kinds in place.
// Two assertions sharing any key are indistinguishable at dispatch time.
func selectorKeys(a *Assertion) []string {
	keys := []string{""}
	for _, p := range a.Parts() {
		switch p.Kind {
		case PartPhrase:
			next := make([]string, 0, len(keys)*len(p.Phrases))
			for _, k := range keys {
				for _, alias := range p.Phrases {
					next = append(next, k+"|"+strings.ToLower(alias))
				}
			}
			keys = next
		case PartSlot:
			for i, k := range keys {
				keys[i] = k + "|<" + p.Slot.Kind.String() + ">"
			}
		}
	}
	return keys
}
