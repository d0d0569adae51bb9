package dispatch

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

// Marker is the reserved token that negates the assertion that follows.
const Marker = "not"

// StripNegation removes one leading negation marker from the token
// list, so the matcher only ever sees unnegated phrases. The marker may
// be a standalone "not" token or a "not " prefix on the first phrase
// string. A second marker is a dispatch error, never collapsed.
func StripNegation(tokens []any) (bool, []any, error) {
	negated, rest := stripOne(tokens)
	if !negated {
		return false, tokens, nil
	}
	if again, _ := stripOne(rest); again {
		return false, nil, &DoubleNegationError{Phrase: calledPhrase(tokens)}
	}
	return true, rest, nil
}

func stripOne(tokens []any) (bool, []any) {
	if len(tokens) == 0 {
		return false, tokens
	}
	head, isStr := tokens[0].(string)
	if !isStr {
		return false, tokens
	}
	if head == Marker {
		return true, tokens[1:]
	}
	if strings.HasPrefix(head, Marker+" ") {
		rest := make([]any, len(tokens))
		copy(rest, tokens)
		rest[0] = strings.TrimPrefix(head, Marker+" ")
		return true, rest
	}
	return false, tokens
}

// Invert flips the polarity of an executed outcome. A negated failure
// becomes a clean pass; a negated pass synthesizes a diagnostic naming
// the full phrase, parameters in their slot positions.
func Invert(res *outcome.Result, a *catalog.Assertion, subject any, params []any) *outcome.Result {
	if !res.Passed {
		return outcome.Pass()
	}
	return outcome.Fail(&outcome.Failure{
		AssertionID: a.ID(),
		Phrase:      a.Phrase(),
		Subject:     subject,
		Message:     fmt.Sprintf("expected %v not %s, but the assertion passed", subject, a.Describe(params)),
	})
}
