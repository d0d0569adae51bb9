// Package outcome defines the pass/fail result contract shared by every
// assertion implementation style, and the ValidationFailure error that
// test authors catch.
package outcome

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
)

// Result is the normalized outcome of executing one assertion.
type Result struct {
	Passed  bool
	Failure *Failure
}

// Pass is the successful outcome. It carries no diagnostic.
func Pass() *Result { return &Result{Passed: true} }

// Fail wraps a diagnostic into a failing outcome.
func Fail(f *Failure) *Result { return &Result{Failure: f} }

// Failure is the diagnostic for an assertion that did not hold. It
// implements error and is the only error type routinely caught by test
// authors.
type Failure struct {
	AssertionID string
	Phrase      string
	Subject     any
	Message     string
	Expected    any
	Actual      any
	HasExpected bool
	HasActual   bool
}

// WithExpected records the expected value on the diagnostic.
func (f *Failure) WithExpected(v any) *Failure {
	f.Expected = v
	f.HasExpected = true
	return f
}

// WithActual records the actual value on the diagnostic.
func (f *Failure) WithActual(v any) *Failure {
	f.Actual = v
	f.HasActual = true
	return f
}

func (f *Failure) Error() string {
	var b strings.Builder
	if f.Message != "" {
		b.WriteString(f.Message)
	} else {
		fmt.Fprintf(&b, "expected %s %s", formatValue(f.Subject), f.Phrase)
	}
	if f.HasExpected && f.HasActual {
		fmt.Fprintf(&b, "\n  expected: %s\n  actual:   %s", formatValue(f.Expected), formatValue(f.Actual))
		if d := diff(f.Expected, f.Actual); d != "" {
			b.WriteString("\n  diff (-expected +actual):\n")
			b.WriteString(indent(d, "    "))
		}
	} else if f.HasActual {
		fmt.Fprintf(&b, "\n  actual: %s", formatValue(f.Actual))
	}
	return b.String()
}

// IsFailure reports whether err is (or wraps) a ValidationFailure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// AsFailure extracts the ValidationFailure from err, if present.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// diff renders a structural diff for composite values. cmp panics on
// unexported fields, so anything it cannot handle degrades to no diff.
func diff(expected, actual any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	if !composite(expected) || !composite(actual) {
		return ""
	}
	return cmp.Diff(expected, actual)
}

func composite(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", val)
	case []any:
		if len(val) > 8 {
			return fmt.Sprintf("[array with %d items]", len(val))
		}
	case map[string]any:
		if len(val) > 8 {
			return fmt.Sprintf("{object with %d keys}", len(val))
		}
	}
	s := fmt.Sprintf("%v", v)
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
