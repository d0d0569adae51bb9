package catalog

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Assertion is one immutable entry of a catalog: a part pattern plus the
// implementation executed when a call matches it.
type Assertion struct {
	id           string
	parts        []Part // parts[0] is always the subject slot
	impl         Implementation
	timeoutAware bool
}

// Option customizes an assertion at construction time.
type Option func(*Assertion)

// WithSubject constrains the subject slot to a kind instead of the
// wildcard. A typed subject raises the assertion's specificity.
func WithSubject(kind SlotKind) Option {
	return func(a *Assertion) {
		a.parts[0].Slot.Kind = kind
	}
}

// WithTimeout marks the assertion as recognizing the Within option.
// Only async assertions that wait on something should carry it.
func WithTimeout() Option {
	return func(a *Assertion) {
		a.timeoutAware = true
	}
}

// New builds an assertion from its phrase pattern and implementation.
func New(pattern string, impl Implementation, opts ...Option) (*Assertion, error) {
	if impl == nil {
		return nil, errors.Newf("assertion %q has no implementation", pattern)
	}
	parts, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}

	a := &Assertion{
		parts: append([]Part{{Kind: PartSlot, Slot: &Slot{Name: "subject", Kind: SlotAny}}}, parts...),
		impl:  impl,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.id = canonicalID(a.parts)
	return a, nil
}

// MustNew is New for statically known patterns; it panics on a malformed
// pattern, which is a programming error in the catalog definition.
func MustNew(pattern string, impl Implementation, opts ...Option) *Assertion {
	a, err := New(pattern, impl, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// ID is the deterministic identity derived from the part pattern.
func (a *Assertion) ID() string { return a.id }

// Parts returns the ordered pattern including the subject slot at
// position 0. The returned slice must not be mutated.
func (a *Assertion) Parts() []Part { return a.parts }

// Phrase is the canonical phrase text with slot markers in place, used
// in diagnostics and suggestions. The subject slot is omitted.
func (a *Assertion) Phrase() string {
	elems := make([]string, 0, len(a.parts)-1)
	for _, p := range a.parts[1:] {
		switch p.Kind {
		case PartPhrase:
			elems = append(elems, strings.ToLower(p.Phrases[0]))
		case PartSlot:
			elems = append(elems, "<"+p.Slot.Kind.String()+">")
		}
	}
	return strings.Join(elems, " ")
}

// Describe renders the phrase with the call's parameters filled into
// their slots, so interleaved literals keep their position. A slot with
// no parameter keeps its marker.
func (a *Assertion) Describe(params []any) string {
	elems := make([]string, 0, len(a.parts)-1)
	next := 0
	for _, p := range a.parts[1:] {
		switch p.Kind {
		case PartPhrase:
			elems = append(elems, strings.ToLower(p.Phrases[0]))
		case PartSlot:
			if next < len(params) {
				elems = append(elems, fmt.Sprintf("%v", params[next]))
				next++
			} else {
				elems = append(elems, "<"+p.Slot.Kind.String()+">")
			}
		}
	}
	return strings.Join(elems, " ")
}

// Impl returns the implementation body.
func (a *Assertion) Impl() Implementation { return a.impl }

// IsAsync reports whether the implementation style is suspension-bearing.
func (a *Assertion) IsAsync() bool { return a.impl.async() }

// TimeoutAware reports whether the assertion consults the Within option.
func (a *Assertion) TimeoutAware() bool { return a.timeoutAware }

// Specificity counts the non-wildcard parts: every phrase part plus
// every typed slot, the subject included.
func (a *Assertion) Specificity() int {
	score := 0
	for _, p := range a.parts {
		switch p.Kind {
		case PartPhrase:
			score++
		case PartSlot:
			if p.Slot.Kind != SlotAny {
				score++
			}
		}
	}
	return score
}

func canonicalID(parts []Part) string {
	elems := make([]string, len(parts))
	for i, p := range parts {
		switch p.Kind {
		case PartPhrase:
			elems[i] = strings.ToLower(p.Phrases[0])
		case PartSlot:
			elems[i] = "<" + p.Slot.Kind.String() + ">"
		}
	}
	return strings.Join(elems, " ")
}
