// Package embed lets a whole assertion stand in for a value inside an
// expected-value template. When the synthesizer meets a placeholder it
// substitutes a validator that dispatches and executes the nested
// assertion against the concrete candidate at that position.
package embed

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/abdul-hamid-achik/checkspec/packages/dispatch"
	"github.com/abdul-hamid-achik/checkspec/packages/executor"
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// Placeholder carries the argument tokens of a deferred assertion. It is
// opaque to callers; anywhere inside a satisfy-class template it acts as
// the validator for the value found at its position.
type Placeholder struct {
	matcher *dispatch.Matcher
	tokens  []any
}

// New binds a deferred assertion to the matcher that will resolve it.
func New(m *dispatch.Matcher, tokens ...any) *Placeholder {
	return &Placeholder{matcher: m, tokens: tokens}
}

// EmbeddedValidator is the synthesizer's hook: the placeholder becomes a
// validator that re-enters dispatch and execution for each candidate.
func (p *Placeholder) EmbeddedValidator() schema.Validator {
	return placeholderValidator{p: p}
}

type placeholderValidator struct {
	p *Placeholder
}

func (v placeholderValidator) Validate(cand any) schema.Result {
	negated, rest, err := dispatch.StripNegation(v.p.tokens)
	if err != nil {
		return schema.Result{Err: err}
	}
	m, err := v.p.matcher.Match(cand, rest)
	if err != nil {
		return schema.Result{Err: err}
	}
	res, err := executor.Run(m.Assertion, cand, m.Params)
	if err != nil {
		return schema.Result{Err: err}
	}
	if negated {
		res = dispatch.Invert(res, m.Assertion, cand, m.Params)
	}
	if res.Passed {
		return schema.Result{Success: true, Data: cand}
	}
	return schema.Result{Err: errors.Newf("%s", res.Failure.Error())}
}

func (v placeholderValidator) Describe() string {
	var words []string
	for _, tok := range v.p.tokens {
		if s, isStr := tok.(string); isStr {
			words = append(words, s)
		} else {
			words = append(words, "<param>")
		}
	}
	return "expect " + strings.Join(words, " ")
}

// Conjunction combines placeholders with all-must-pass semantics. Its
// failure names every failing branch, not just the first.
type Conjunction struct {
	parts []*Placeholder
}

// All builds a conjunction of deferred assertions.
func All(parts ...*Placeholder) *Conjunction {
	return &Conjunction{parts: parts}
}

// EmbeddedValidator lets a conjunction sit inside a template like any
// single placeholder.
func (c *Conjunction) EmbeddedValidator() schema.Validator {
	vs := make([]schema.Validator, len(c.parts))
	for i, p := range c.parts {
		vs[i] = p.EmbeddedValidator()
	}
	return schema.AllOf(vs...)
}
