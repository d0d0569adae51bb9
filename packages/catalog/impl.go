package catalog

import (
	"context"

	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// Implementation is the closed set of styles an assertion body may take.
// The executor normalizes all of them into one outcome contract.
type Implementation interface {
	style() string
	async() bool
}

// Predicate is the boolean style: true passes, false fails with a
// generic diagnostic built from the phrase, subject and parameters.
type Predicate func(subject any, params ...any) bool

// Describer either returns nil (pass) or a *outcome.Failure describing
// why the assertion did not hold. Any other returned error propagates
// verbatim: it signals a bug in the assertion definition, not a result.
type Describer func(subject any, params ...any) error

// Builder returns a validator that becomes the final check on the
// subject. This is the integration point for the satisfy/equal family.
type Builder func(subject any, params ...any) (schema.Validator, error)

// AsyncPredicate is Predicate with a context for suspension points.
// A non-nil error other than the context's own is treated as a failure.
type AsyncPredicate func(ctx context.Context, subject any, params ...any) (bool, error)

// AsyncDescriber is Describer with a context.
type AsyncDescriber func(ctx context.Context, subject any, params ...any) error

// AsyncBuilder is Builder with a context.
type AsyncBuilder func(ctx context.Context, subject any, params ...any) (schema.Validator, error)

func (Predicate) style() string      { return "predicate" }
func (Describer) style() string      { return "describer" }
func (Builder) style() string        { return "builder" }
func (AsyncPredicate) style() string { return "predicate" }
func (AsyncDescriber) style() string { return "describer" }
func (AsyncBuilder) style() string   { return "builder" }

func (Predicate) async() bool      { return false }
func (Describer) async() bool      { return false }
func (Builder) async() bool        { return false }
func (AsyncPredicate) async() bool { return true }
func (AsyncDescriber) async() bool { return true }
func (AsyncBuilder) async() bool   { return true }
