package builtin

import (
	"fmt"
	"math"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// Catalog merges every builtin family.
func Catalog() *catalog.Catalog {
	merged, err := catalog.Merge(Core(), Strings(), Collections(), Satisfy(), JSON(), Async())
	if err != nil {
		panic(err)
	}
	return merged
}

// Core covers type membership, equality and numeric comparison.
func Core() *catalog.Catalog {
	return catalog.MustCatalog(
		kindAssertion("to be a number", schema.KindNumber),
		kindAssertion("to be a string", schema.KindString),
		kindAssertion("to be a boolean", schema.KindBool),
		kindAssertion("(to be an array|to be a list)", schema.KindArray),
		kindAssertion("to be an object", schema.KindObject),
		kindAssertion("(to be a function|to be callable)", schema.KindCallable),
		kindAssertion("to be an error", schema.KindError),

		catalog.MustNew("(to be nil|to be null)", catalog.Predicate(func(subject any, _ ...any) bool {
			return schema.KindOf(subject) == schema.KindNil
		})),
		catalog.MustNew("to be true", catalog.Predicate(func(subject any, _ ...any) bool {
			b, isBool := subject.(bool)
			return isBool && b
		})),
		catalog.MustNew("to be false", catalog.Predicate(func(subject any, _ ...any) bool {
			b, isBool := subject.(bool)
			return isBool && !b
		})),
		catalog.MustNew("to be NaN", catalog.Predicate(func(subject any, _ ...any) bool {
			f, isNum := toFloat64(subject)
			return isNum && math.IsNaN(f)
		}), catalog.WithSubject(catalog.SlotNumber)),

		catalog.MustNew("(to equal|to be) <value>", catalog.Describer(equalImpl)),

		comparison("to be greater than", func(s, b float64) bool { return s > b }, ">"),
		comparison("(to be at least|to be greater than or equal to)", func(s, b float64) bool { return s >= b }, ">="),
		comparison("to be less than", func(s, b float64) bool { return s < b }, "<"),
		comparison("(to be at most|to be less than or equal to)", func(s, b float64) bool { return s <= b }, "<="),

		catalog.MustNew("to be between <low:number> and <high:number>",
			catalog.Describer(func(subject any, params ...any) error {
				s, isNum := toFloat64(subject)
				low, _ := toFloat64(params[0])
				high, _ := toFloat64(params[1])
				if isNum && s >= low && s <= high {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %v to be between %v and %v", subject, params[0], params[1]),
				}
			}), catalog.WithSubject(catalog.SlotNumber)),

		catalog.MustNew("to panic", catalog.Describer(panicImpl), catalog.WithSubject(catalog.SlotCallable)),
		catalog.MustNew("to panic with <message:string>", catalog.Describer(panicImpl),
			catalog.WithSubject(catalog.SlotCallable)),
	)
}

func kindAssertion(pattern string, k schema.Kind) *catalog.Assertion {
	return catalog.MustNew(pattern, catalog.Predicate(func(subject any, _ ...any) bool {
		return schema.KindOf(subject) == k
	}))
}

func equalImpl(subject any, params ...any) error {
	want := params[0]
	if literalEqual(subject, want) {
		return nil
	}
	f := (&outcome.Failure{
		Message: fmt.Sprintf("expected %v to equal %v", subject, want),
	}).WithExpected(want).WithActual(subject)
	return f
}

func comparison(pattern string, holds func(subject, bound float64) bool, op string) *catalog.Assertion {
	return catalog.MustNew(pattern+" <bound:number>",
		catalog.Describer(func(subject any, params ...any) error {
			s, isNum := toFloat64(subject)
			b, _ := toFloat64(params[0])
			if isNum && holds(s, b) {
				return nil
			}
			return &outcome.Failure{
				Message: fmt.Sprintf("expected %v %s %v", subject, op, params[0]),
			}
		}), catalog.WithSubject(catalog.SlotNumber))
}

func panicImpl(subject any, params ...any) (failure error) {
	fn, isFn := subject.(func())
	if !isFn {
		return &outcome.Failure{Message: fmt.Sprintf("expected a func() subject, got %T", subject)}
	}

	recovered := func() (r any) {
		defer func() { r = recover() }()
		fn()
		return nil
	}()

	if recovered == nil {
		return &outcome.Failure{Message: "expected the function to panic, but it returned"}
	}
	if len(params) == 1 {
		want := fmt.Sprintf("%v", params[0])
		got := fmt.Sprintf("%v", recovered)
		if got != want {
			return (&outcome.Failure{
				Message: fmt.Sprintf("expected a panic with %q, got %q", want, got),
			}).WithExpected(want).WithActual(got)
		}
	}
	return nil
}

// literalEqual mirrors the synthesizer's literal rule: NaN matches
// itself and numbers compare across concrete types.
func literalEqual(a, b any) bool {
	return schema.Literal(b).Validate(a).Success
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
