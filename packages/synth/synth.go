// Package synth turns an arbitrary runtime value into a structural
// validator for "satisfies" (partial) and "exhaustively satisfies"
// (exact) matching.
//
// Synthesis walks the template bottom-up and mirrors its shape with
// schema combinators. Self-referential templates terminate: revisiting
// an already-seen template object emits a back-reference node instead of
// recursing. Synthesis never partially fails; it returns a complete
// validator or an error, and the only defined error is the poisoned-key
// case.
package synth

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// DefaultMaxDepth bounds recursion when Options.MaxDepth is unset.
const DefaultMaxDepth = 32

// poisonedKey is the legacy prototype-link name. Templates carrying it
// as an own key come from data that cannot be represented faithfully,
// so synthesis refuses them instead of building a wrong validator.
const poisonedKey = "__proto__"

// Options is the configuration snapshot a synthesized validator closes
// over. The zero value means: satisfy mode, literal primitives, literal
// patterns, no homogeneous collapse, strict empty-object rule off.
type Options struct {
	// Exact switches from satisfy (supersets accepted) to exhaustive
	// matching (extra keys and elements rejected).
	Exact bool
	// TypeOnly matches primitives by runtime type, ignoring literals.
	TypeOnly bool
	// PatternMatch makes pattern templates match candidate strings
	// instead of requiring an equal pattern value.
	PatternMatch bool
	// CollapseHomogeneous folds an array of same-typed elements into a
	// single per-element validator.
	CollapseHomogeneous bool
	// StrictEmptyObject makes a literal empty-object template demand an
	// empty candidate object rather than any object.
	StrictEmptyObject bool
	// MaxDepth truncates recursion; descendants beyond it are accepted
	// unconditionally. Zero means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Error is the synthesis-time failure for structurally unsupported
// templates.
type Error struct {
	Key string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot synthesize a validator for an object with own key %q", e.Key)
}

// Build synthesizes a validator that checks whether another value
// matches template under opts.
func Build(template any, opts Options) (schema.Validator, error) {
	b := &builder{opts: opts, visited: make(map[uintptr]*schema.Ref)}
	return b.build(template, 0)
}

type builder struct {
	opts    Options
	visited map[uintptr]*schema.Ref
}

func (b *builder) build(v any, depth int) (schema.Validator, error) {
	if depth > b.opts.maxDepth() {
		return schema.Any(), nil
	}

	if emb, isEmb := v.(schema.Embeddable); isEmb {
		return emb.EmbeddedValidator(), nil
	}

	switch schema.KindOf(v) {
	case schema.KindNil:
		return schema.Literal(nil), nil
	case schema.KindBool:
		return b.primitive(v, schema.KindBool), nil
	case schema.KindNumber:
		return b.primitive(v, schema.KindNumber), nil
	case schema.KindString:
		return b.primitive(v, schema.KindString), nil
	case schema.KindPattern:
		re := v.(*regexp.Regexp)
		if b.opts.PatternMatch {
			return schema.Pattern(re), nil
		}
		return schema.PatternLiteral(re), nil
	case schema.KindError:
		return schema.ErrorMatching(v.(error)), nil
	case schema.KindCallable:
		return schema.Invocable(), nil
	case schema.KindChannel:
		return channelValidator(v), nil
	case schema.KindArray:
		return b.array(v, depth)
	case schema.KindObject:
		return b.object(v, depth)
	default:
		return schema.Literal(v), nil
	}
}

func (b *builder) primitive(v any, k schema.Kind) schema.Validator {
	if b.opts.TypeOnly {
		return schema.OfKind(k)
	}
	return schema.Literal(v)
}

func (b *builder) array(v any, depth int) (schema.Validator, error) {
	if ref, revisit := b.enter(v); revisit {
		return ref, nil
	}

	elems, _ := schema.Elems(v)
	children := make([]schema.Validator, len(elems))
	for i, item := range elems {
		child, err := b.build(item, depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	var built schema.Validator
	if collapsed, collapsible := b.collapse(elems, children); collapsible {
		if b.opts.Exact {
			built = schema.EachN(collapsed, len(elems))
		} else {
			built = schema.Each(collapsed)
		}
	} else {
		// Satisfy mode accepts trailing extra elements but still
		// requires every templated position to be present.
		built = schema.Array(children, !b.opts.Exact)
	}
	b.leave(v, built)
	return built, nil
}

// collapse reports the single per-element validator for a homogeneous
// array template. In type-only mode any shared kind collapses; in
// literal mode only an array of equal literals does.
func (b *builder) collapse(elems []any, children []schema.Validator) (schema.Validator, bool) {
	if !b.opts.CollapseHomogeneous || len(elems) == 0 {
		return nil, false
	}
	shared := schema.KindOf(elems[0])
	for _, item := range elems[1:] {
		if schema.KindOf(item) != shared {
			return nil, false
		}
	}
	if b.opts.TypeOnly {
		return children[0], true
	}
	for _, item := range elems[1:] {
		if !reflect.DeepEqual(item, elems[0]) {
			return nil, false
		}
	}
	return children[0], true
}

func (b *builder) object(v any, depth int) (schema.Validator, error) {
	fields, isObj := schema.Fields(v)
	if !isObj {
		// Map with non-string keys: delegate to whole-value equality
		// instead of recursing into internals.
		return schema.Literal(v), nil
	}
	if _, poisoned := fields[poisonedKey]; poisoned {
		return nil, &Error{Key: poisonedKey}
	}

	if len(fields) == 0 && b.opts.StrictEmptyObject {
		return schema.EmptyObject(), nil
	}

	if ref, revisit := b.enter(v); revisit {
		return ref, nil
	}

	children := make(map[string]schema.Validator, len(fields))
	for name, val := range fields {
		child, err := b.build(val, depth+1)
		if err != nil {
			return nil, err
		}
		children[name] = child
	}

	built := schema.Object(children, b.opts.Exact)
	b.leave(v, built)
	return built, nil
}

// enter registers v in the visited map. A second visit returns the
// in-progress back-reference instead of recursing.
func (b *builder) enter(v any) (*schema.Ref, bool) {
	id, hasID := schema.Identity(v)
	if !hasID {
		return nil, false
	}
	if ref, seen := b.visited[id]; seen {
		return ref, true
	}
	b.visited[id] = schema.NewRef()
	return nil, false
}

func (b *builder) leave(v any, built schema.Validator) {
	if id, hasID := schema.Identity(v); hasID {
		if ref, seen := b.visited[id]; seen {
			ref.Resolve(built)
		}
	}
}

// channelValidator delegates to a kind-and-direction check; channel
// internals are never drained during synthesis.
func channelValidator(v any) schema.Validator {
	want := reflect.TypeOf(v)
	return schema.Satisfies("a "+want.String(), func(cand any) bool {
		t := reflect.TypeOf(cand)
		return t != nil && t.Kind() == reflect.Chan && t == want
	})
}
