package builtin

import (
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// Collections covers sizes, keys and membership.
func Collections() *catalog.Catalog {
	return catalog.MustCatalog(
		catalog.MustNew("(to have size|to have length) <size:number>",
			catalog.Describer(func(subject any, params ...any) error {
				want, _ := toFloat64(params[0])
				got := sizeOf(subject)
				if got < 0 {
					return &outcome.Failure{
						Message: fmt.Sprintf("cannot take the size of %T", subject),
					}
				}
				if got == int(want) {
					return nil
				}
				return (&outcome.Failure{
					Message: fmt.Sprintf("expected size %d, got %d", int(want), got),
				}).WithExpected(int(want)).WithActual(got)
			})),

		catalog.MustNew("to be empty",
			catalog.Describer(func(subject any, _ ...any) error {
				got := sizeOf(subject)
				if got < 0 {
					return &outcome.Failure{
						Message: fmt.Sprintf("cannot take the size of %T", subject),
					}
				}
				if got == 0 {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %v to be empty, but it has %d element(s)", subject, got),
				}
			})),

		catalog.MustNew("to have key <key:string>",
			catalog.Describer(func(subject any, params ...any) error {
				key := params[0].(string)
				fields, isObj := schema.Fields(subject)
				if !isObj {
					return &outcome.Failure{Message: fmt.Sprintf("expected an object subject, got %T", subject)}
				}
				if _, present := fields[key]; present {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %v to have key %q", subject, key),
				}
			}), catalog.WithSubject(catalog.SlotObject)),

		catalog.MustNew("to have keys <keys:array>",
			catalog.Describer(func(subject any, params ...any) error {
				fields, isObj := schema.Fields(subject)
				if !isObj {
					return &outcome.Failure{Message: fmt.Sprintf("expected an object subject, got %T", subject)}
				}
				keys, _ := schema.Elems(params[0])
				for _, k := range keys {
					name := fmt.Sprintf("%v", k)
					if _, present := fields[name]; !present {
						return &outcome.Failure{
							Message: fmt.Sprintf("expected %v to have key %q", subject, name),
						}
					}
				}
				return nil
			}), catalog.WithSubject(catalog.SlotObject)),

		catalog.MustNew("to contain <item>",
			catalog.Describer(func(subject any, params ...any) error {
				elems, _ := schema.Elems(subject)
				for _, item := range elems {
					if literalEqual(item, params[0]) {
						return nil
					}
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %v to contain %v", subject, params[0]),
				}
			}), catalog.WithSubject(catalog.SlotArray)),

		catalog.MustNew("to be one of <options:array>",
			catalog.Describer(func(subject any, params ...any) error {
				options, _ := schema.Elems(params[0])
				for _, opt := range options {
					if literalEqual(subject, opt) {
						return nil
					}
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %v to be one of %v", subject, params[0]),
				}
			})),
	)
}

// sizeOf returns the length of a sized value, or -1.
func sizeOf(v any) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return rv.Len()
	default:
		return -1
	}
}
