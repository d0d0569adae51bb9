// Package executor normalizes the three assertion implementation styles
// into one pass/fail-plus-diagnostic contract, for both the synchronous
// and the suspension-bearing entry points.
package executor

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// Run executes a matched synchronous assertion. The returned error is
// reserved for implementation-internal exceptions, which propagate
// verbatim; "the assertion did not hold" is a failing Result.
func Run(a *catalog.Assertion, subject any, params []any) (*outcome.Result, error) {
	switch impl := a.Impl().(type) {
	case catalog.Predicate:
		if impl(subject, params...) {
			return outcome.Pass(), nil
		}
		return outcome.Fail(genericFailure(a, subject, params)), nil
	case catalog.Describer:
		return describeOutcome(a, subject, impl(subject, params...))
	case catalog.Builder:
		v, err := impl(subject, params...)
		if err != nil {
			return describeOutcome(a, subject, err)
		}
		return validatorOutcome(a, subject, v), nil
	default:
		return nil, errors.Newf("assertion %q is async and cannot run synchronously", a.ID())
	}
}

// describeOutcome normalizes a describer-style return: nil passes, a
// ValidationFailure (returned or wrapped) fails with its fields kept
// verbatim, anything else propagates unmodified.
func describeOutcome(a *catalog.Assertion, subject any, err error) (*outcome.Result, error) {
	if err == nil {
		return outcome.Pass(), nil
	}
	if f, isFailure := outcome.AsFailure(err); isFailure {
		fillDefaults(f, a, subject)
		return outcome.Fail(f), nil
	}
	return nil, err
}

// validatorOutcome applies a builder-style validator as the final check
// on the subject.
func validatorOutcome(a *catalog.Assertion, subject any, v schema.Validator) *outcome.Result {
	r := v.Validate(subject)
	if r.Success {
		return outcome.Pass()
	}
	return outcome.Fail(&outcome.Failure{
		AssertionID: a.ID(),
		Phrase:      a.Phrase(),
		Subject:     subject,
		Message:     r.Err.Error(),
	})
}

func genericFailure(a *catalog.Assertion, subject any, params []any) *outcome.Failure {
	return &outcome.Failure{
		AssertionID: a.ID(),
		Phrase:      a.Phrase(),
		Subject:     subject,
		Message:     fmt.Sprintf("expected %v %s", subject, a.Describe(params)),
	}
}

func fillDefaults(f *outcome.Failure, a *catalog.Assertion, subject any) {
	if f.AssertionID == "" {
		f.AssertionID = a.ID()
	}
	if f.Phrase == "" {
		f.Phrase = a.Phrase()
	}
	if f.Subject == nil {
		f.Subject = subject
	}
}
