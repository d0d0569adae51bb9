package schema

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/cockroachdb/errors"
)

// Result is the non-throwing outcome of a validation.
// On success, Data holds the value that was validated.
type Result struct {
	Success bool
	Data    any
	Err     error
}

// Validator checks a single value against a structural constraint.
type Validator interface {
	Validate(v any) Result
	Describe() string
}

// Embeddable is implemented by placeholders that substitute a live
// validator when encountered inside an expected-value template.
type Embeddable interface {
	EmbeddedValidator() Validator
}

func ok(v any) Result {
	return Result{Success: true, Data: v}
}

func fail(format string, args ...any) Result {
	return Result{Err: errors.Newf(format, args...)}
}

// Kind is the closed set of runtime shapes validators distinguish.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindCallable
	KindPattern
	KindError
	KindChannel
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCallable:
		return "callable"
	case KindPattern:
		return "pattern"
	case KindError:
		return "error"
	case KindChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind of an arbitrary value. Patterns and errors are
// recognized before the generic object rule so that they never decompose
// into their fields.
func KindOf(v any) Kind {
	if v == nil {
		return KindNil
	}
	if _, isPattern := v.(*regexp.Regexp); isPattern {
		return KindPattern
	}
	if _, isErr := v.(error); isErr {
		return KindError
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Func:
		return KindCallable
	case reflect.Chan:
		return KindChannel
	case reflect.Map, reflect.Struct:
		return KindObject
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return KindNil
		}
		return KindOf(rv.Elem().Interface())
	default:
		return KindObject
	}
}

// Fields decomposes an object-like value into name/value pairs.
// Maps with string keys and structs (exported fields only) qualify.
func Fields(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		t := rv.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			out[t.Field(i).Name] = rv.Field(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// Elems decomposes a slice or array into a []any.
func Elems(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// Identity returns a stable identity key for reference-shaped values.
// Used by back-reference validators to detect candidate cycles.
func Identity(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

func describeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", val)
	case *regexp.Regexp:
		return "/" + val.String() + "/"
	default:
		s := fmt.Sprintf("%v", v)
		if len(s) > 80 {
			s = s[:80] + "..."
		}
		return s
	}
}
