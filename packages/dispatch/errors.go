package dispatch

import (
	"fmt"
	"strings"
)

// UnknownAssertionError is raised when no catalog assertion matches the
// call. Nearest carries the closest registered phrase by edit distance;
// TypeMismatches lists assertions whose phrase matched but whose
// parameter types did not.
type UnknownAssertionError struct {
	Phrase         string
	Nearest        string
	TypeMismatches []string
}

func (e *UnknownAssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown assertion %q", e.Phrase)
	if len(e.TypeMismatches) > 0 {
		b.WriteString("; did you mean:")
		for _, m := range e.TypeMismatches {
			b.WriteString("\n  ")
			b.WriteString(m)
		}
	} else if e.Nearest != "" {
		fmt.Fprintf(&b, ", did you mean %q?", e.Nearest)
	}
	return b.String()
}

// AmbiguousAssertionError is raised when two or more assertions match a
// call with the same top specificity. This is a catalog-authoring bug.
type AmbiguousAssertionError struct {
	Phrase string
	IDs    []string
}

func (e *AmbiguousAssertionError) Error() string {
	return fmt.Sprintf("ambiguous assertion %q: matched by %s", e.Phrase, strings.Join(e.IDs, ", "))
}

// DoubleNegationError is raised when a call carries two negation
// markers; it is never silently collapsed.
type DoubleNegationError struct {
	Phrase string
}

func (e *DoubleNegationError) Error() string {
	return fmt.Sprintf("double negation in %q", e.Phrase)
}
