package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// seenKey identifies one (back-reference node, candidate) pair during a
// single validation walk. A repeated pair means the candidate cycled back
// to a value already being checked against the same node.
type seenKey struct {
	node      uintptr
	candidate uintptr
}

// cycleAware validators thread the walk-local seen set through recursion.
// The set lives on the stack of one Validate call; validators themselves
// stay immutable and safe for concurrent use.
type cycleAware interface {
	validate(v any, seen map[seenKey]struct{}) Result
}

func step(val Validator, v any, seen map[seenKey]struct{}) Result {
	if ca, isCa := val.(cycleAware); isCa {
		return ca.validate(v, seen)
	}
	return val.Validate(v)
}

// Any accepts every value.
func Any() Validator { return anyValidator{} }

type anyValidator struct{}

func (anyValidator) Validate(v any) Result { return ok(v) }
func (anyValidator) Describe() string      { return "anything" }

// Literal requires exact equality with want. The floating-point NaN value
// matches itself, and numeric values compare across concrete types.
func Literal(want any) Validator { return literalValidator{want: want} }

type literalValidator struct{ want any }

func (l literalValidator) Validate(v any) Result {
	if literalEqual(v, l.want) {
		return ok(v)
	}
	return fail("expected %s, got %s", describeValue(l.want), describeValue(v))
}

func (l literalValidator) Describe() string { return describeValue(l.want) }

func literalEqual(a, b any) bool {
	if af, aNum := toFloat64(a); aNum {
		bf, bNum := toFloat64(b)
		if !bNum {
			return false
		}
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// OfKind requires the candidate to have the given runtime Kind.
func OfKind(k Kind) Validator { return kindValidator{k: k} }

type kindValidator struct{ k Kind }

func (kv kindValidator) Validate(v any) Result {
	got := KindOf(v)
	if got == kv.k {
		return ok(v)
	}
	return fail("expected a %s, got a %s (%s)", kv.k, got, describeValue(v))
}

func (kv kindValidator) Describe() string { return "a " + kv.k.String() }

// Pattern stringifies the candidate and tests it against re.
func Pattern(re *regexp.Regexp) Validator { return patternValidator{re: re} }

type patternValidator struct{ re *regexp.Regexp }

func (p patternValidator) Validate(v any) Result {
	if p.re.MatchString(fmt.Sprint(v)) {
		return ok(v)
	}
	return fail("expected %s to match /%s/", describeValue(v), p.re.String())
}

func (p patternValidator) Describe() string { return "/" + p.re.String() + "/" }

// PatternLiteral requires the candidate to be a pattern equal to re,
// source and all; it never matches plain strings.
func PatternLiteral(re *regexp.Regexp) Validator { return patternLiteralValidator{re: re} }

type patternLiteralValidator struct{ re *regexp.Regexp }

func (p patternLiteralValidator) Validate(v any) Result {
	cand, isPattern := v.(*regexp.Regexp)
	if !isPattern {
		return fail("expected the pattern /%s/, got %s", p.re.String(), describeValue(v))
	}
	if cand == p.re || cand.String() == p.re.String() {
		return ok(v)
	}
	return fail("expected the pattern /%s/, got /%s/", p.re.String(), cand.String())
}

func (p patternLiteralValidator) Describe() string { return "/" + p.re.String() + "/" }

// Object validates object-like candidates field by field. In exact mode
// keys absent from fields are rejected; otherwise they are ignored.
// requireEmpty marks the empty-template special case: the candidate must
// itself be an empty object, not merely any object.
func Object(fields map[string]Validator, exact bool) Validator {
	return objectValidator{fields: fields, exact: exact}
}

// EmptyObject requires an object-like candidate with no fields at all.
func EmptyObject() Validator {
	return objectValidator{fields: map[string]Validator{}, exact: true, requireEmpty: true}
}

type objectValidator struct {
	fields       map[string]Validator
	exact        bool
	requireEmpty bool
}

func (o objectValidator) Validate(v any) Result {
	return o.validate(v, make(map[seenKey]struct{}))
}

func (o objectValidator) validate(v any, seen map[seenKey]struct{}) Result {
	cand, isObj := Fields(v)
	if !isObj {
		return fail("expected an object, got %s", describeValue(v))
	}
	if o.requireEmpty {
		if len(cand) != 0 {
			return fail("expected an empty object, got one with %d keys", len(cand))
		}
		return ok(v)
	}

	names := make([]string, 0, len(o.fields))
	for name := range o.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, present := cand[name]
		if !present {
			return fail("missing key %q", name)
		}
		if r := step(o.fields[name], val, seen); !r.Success {
			return fail("key %q: %s", name, r.Err)
		}
	}

	if o.exact {
		var extra []string
		for name := range cand {
			if _, known := o.fields[name]; !known {
				extra = append(extra, name)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return fail("unexpected extra key(s): %s", strings.Join(extra, ", "))
		}
	}
	return ok(v)
}

func (o objectValidator) Describe() string {
	if o.requireEmpty {
		return "an empty object"
	}
	return fmt.Sprintf("an object with %d key(s)", len(o.fields))
}

// Array validates one element validator per position. Candidates shorter
// than the template fail; longer candidates pass only when allowExtra is
// set.
func Array(elems []Validator, allowExtra bool) Validator {
	return arrayValidator{elems: elems, allowExtra: allowExtra}
}

type arrayValidator struct {
	elems      []Validator
	allowExtra bool
}

func (a arrayValidator) Validate(v any) Result {
	return a.validate(v, make(map[seenKey]struct{}))
}

func (a arrayValidator) validate(v any, seen map[seenKey]struct{}) Result {
	cand, isArr := Elems(v)
	if !isArr {
		return fail("expected an array, got %s", describeValue(v))
	}
	if len(cand) < len(a.elems) {
		return fail("expected at least %d element(s), got %d", len(a.elems), len(cand))
	}
	if !a.allowExtra && len(cand) > len(a.elems) {
		return fail("expected exactly %d element(s), got %d", len(a.elems), len(cand))
	}
	for i, ev := range a.elems {
		if r := step(ev, cand[i], seen); !r.Success {
			return fail("element %d: %s", i, r.Err)
		}
	}
	return ok(v)
}

func (a arrayValidator) Describe() string {
	return fmt.Sprintf("an array of %d element(s)", len(a.elems))
}

// Each applies one validator to every element of an array candidate.
// exactLen of -1 leaves the candidate length unconstrained.
func Each(elem Validator) Validator { return eachValidator{elem: elem, exactLen: -1} }

// EachN is Each with a required candidate length.
func EachN(elem Validator, n int) Validator { return eachValidator{elem: elem, exactLen: n} }

type eachValidator struct {
	elem     Validator
	exactLen int
}

func (e eachValidator) Validate(v any) Result {
	return e.validate(v, make(map[seenKey]struct{}))
}

func (e eachValidator) validate(v any, seen map[seenKey]struct{}) Result {
	cand, isArr := Elems(v)
	if !isArr {
		return fail("expected an array, got %s", describeValue(v))
	}
	if e.exactLen >= 0 && len(cand) != e.exactLen {
		return fail("expected exactly %d element(s), got %d", e.exactLen, len(cand))
	}
	for i, item := range cand {
		if r := step(e.elem, item, seen); !r.Success {
			return fail("element %d: %s", i, r.Err)
		}
	}
	return ok(v)
}

func (e eachValidator) Describe() string {
	return "an array of " + e.elem.Describe()
}

// Union passes when any alternative passes.
func Union(alts ...Validator) Validator { return unionValidator{alts: alts} }

type unionValidator struct{ alts []Validator }

func (u unionValidator) Validate(v any) Result {
	return u.validate(v, make(map[seenKey]struct{}))
}

func (u unionValidator) validate(v any, seen map[seenKey]struct{}) Result {
	var descs []string
	for _, alt := range u.alts {
		if r := step(alt, v, seen); r.Success {
			return r
		}
		descs = append(descs, alt.Describe())
	}
	return fail("expected one of %s, got %s", strings.Join(descs, " | "), describeValue(v))
}

func (u unionValidator) Describe() string {
	descs := make([]string, len(u.alts))
	for i, alt := range u.alts {
		descs[i] = alt.Describe()
	}
	return strings.Join(descs, " | ")
}

// Invocable requires a callable candidate; nothing else about the
// function is inspected.
func Invocable() Validator { return invocableValidator{} }

type invocableValidator struct{}

func (invocableValidator) Validate(v any) Result {
	if KindOf(v) == KindCallable {
		return ok(v)
	}
	return fail("expected a callable, got %s", describeValue(v))
}

func (invocableValidator) Describe() string { return "a callable" }

// Satisfies wraps a plain predicate with a description.
func Satisfies(desc string, pred func(any) bool) Validator {
	return satisfiesValidator{desc: desc, pred: pred}
}

type satisfiesValidator struct {
	desc string
	pred func(any) bool
}

func (s satisfiesValidator) Validate(v any) Result {
	if s.pred(v) {
		return ok(v)
	}
	return fail("expected %s, got %s", s.desc, describeValue(v))
}

func (s satisfiesValidator) Describe() string { return s.desc }

// ErrorMatching requires an error candidate that is (or wraps) want, or
// carries the same message.
func ErrorMatching(want error) Validator { return errorValidator{want: want} }

type errorValidator struct{ want error }

func (e errorValidator) Validate(v any) Result {
	cand, isErr := v.(error)
	if !isErr {
		return fail("expected an error, got %s", describeValue(v))
	}
	if errors.Is(cand, e.want) || cand.Error() == e.want.Error() {
		return ok(v)
	}
	return fail("expected error %q, got %q", e.want.Error(), cand.Error())
}

func (e errorValidator) Describe() string { return fmt.Sprintf("error %q", e.want.Error()) }

// AllOf passes only when every part passes; its failure names every
// failing part, not just the first.
func AllOf(parts ...Validator) Validator { return allOfValidator{parts: parts} }

type allOfValidator struct{ parts []Validator }

func (a allOfValidator) Validate(v any) Result {
	return a.validate(v, make(map[seenKey]struct{}))
}

func (a allOfValidator) validate(v any, seen map[seenKey]struct{}) Result {
	var failures []string
	for _, part := range a.parts {
		if r := step(part, v, seen); !r.Success {
			failures = append(failures, fmt.Sprintf("%s: %s", part.Describe(), r.Err))
		}
	}
	if len(failures) > 0 {
		return fail("%s", strings.Join(failures, "; "))
	}
	return ok(v)
}

func (a allOfValidator) Describe() string {
	descs := make([]string, len(a.parts))
	for i, part := range a.parts {
		descs[i] = part.Describe()
	}
	return strings.Join(descs, " and ")
}

// Ref is a back-reference node standing in for a validator that is still
// under construction. Revisiting the same candidate through the same Ref
// passes instead of recursing forever.
type Ref struct {
	target Validator
	id     *int
}

// NewRef returns an unresolved back-reference.
func NewRef() *Ref { return &Ref{id: new(int)} }

// Resolve points the reference at its final target. Called exactly once,
// when the enclosing validator finishes construction.
func (r *Ref) Resolve(target Validator) { r.target = target }

func (r *Ref) Validate(v any) Result {
	return r.validate(v, make(map[seenKey]struct{}))
}

func (r *Ref) validate(v any, seen map[seenKey]struct{}) Result {
	if r.target == nil {
		return fail("unresolved back-reference")
	}
	if id, hasID := Identity(v); hasID {
		key := seenKey{node: reflect.ValueOf(r.id).Pointer(), candidate: id}
		if _, visited := seen[key]; visited {
			return ok(v)
		}
		seen[key] = struct{}{}
		defer delete(seen, key)
	}
	return step(r.target, v, seen)
}

func (r *Ref) Describe() string { return "a back-reference" }
