// Package checkspec asserts in near-natural language. A check is a
// tuple of a subject, phrase strings and parameters; the phrase selects
// an assertion from a catalog, the parameters fill its slots, and the
// assertion either holds or yields a diagnostic failure.
//
//	err := checkspec.Check(42, "to be between", 40, "and", 45)
//	err := checkspec.Check("boom", "not", "to equal", "bang")
//	err := checkspec.CheckAsync(ctx, fetch, "to resolve with", "ok",
//		checkspec.Within(time.Second))
package checkspec

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/checkspec/packages/builtin"
	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/core/config"
	"github.com/abdul-hamid-achik/checkspec/packages/dispatch"
	"github.com/abdul-hamid-achik/checkspec/packages/embed"
	"github.com/abdul-hamid-achik/checkspec/packages/executor"
)

// Checker binds a catalog to the dispatch and execution machinery.
// Checkers are immutable; Register returns a new one.
type Checker struct {
	catalog *catalog.Catalog
	matcher *dispatch.Matcher
	log     *zap.Logger
	timeout time.Duration
}

// Option configures a Checker at construction.
type Option func(*Checker)

// WithLogger installs a debug logger for dispatch decisions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) { c.log = l }
}

// WithConfig applies loaded defaults, currently the wait timeout.
func WithConfig(cfg *config.Config) Option {
	return func(c *Checker) {
		if d := cfg.WaitTimeout(); d > 0 {
			c.timeout = d
		}
	}
}

// NewChecker builds a checker over the given catalog.
func NewChecker(cat *catalog.Catalog, opts ...Option) *Checker {
	c := &Checker{catalog: cat, log: zap.NewNop(), timeout: executor.DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	c.matcher = dispatch.NewMatcher(cat.All(), dispatch.WithLogger(c.log))
	return c
}

// withinToken is the opaque carrier behind Within. It is stripped from
// the argument list before dispatch.
type withinToken struct {
	d time.Duration
}

// Within bounds how long an asynchronous check may wait before it fails
// with a timeout. It may appear anywhere in the argument list.
func Within(d time.Duration) any {
	return withinToken{d: d}
}

// Check runs a synchronous assertion. A nil return means the assertion
// held; a *outcome.Failure carries the diagnostic when it did not.
// Dispatch problems (unknown phrase, ambiguity, double negation) and
// implementation-internal exceptions come back as distinct error types.
func (c *Checker) Check(subject any, args ...any) error {
	tokens, _ := stripWithin(args)
	negated, rest, err := dispatch.StripNegation(tokens)
	if err != nil {
		return err
	}
	m, err := c.matcher.Match(subject, rest)
	if err != nil {
		return err
	}
	res, err := executor.Run(m.Assertion, subject, m.Params)
	if err != nil {
		return err
	}
	if negated {
		res = dispatch.Invert(res, m.Assertion, subject, m.Params)
	}
	if res.Passed {
		return nil
	}
	return res.Failure
}

// CheckAsync runs an assertion from the asynchronous entry point.
// Synchronous assertions still work here; suspension-bearing ones race
// their wait against the Within bound (or the checker default).
func (c *Checker) CheckAsync(ctx context.Context, subject any, args ...any) error {
	tokens, within := stripWithin(args)
	if within <= 0 {
		within = c.timeout
	}
	negated, rest, err := dispatch.StripNegation(tokens)
	if err != nil {
		return err
	}
	m, err := c.matcher.Match(subject, rest)
	if err != nil {
		return err
	}
	res, err := executor.RunAsync(ctx, m.Assertion, subject, m.Params, within)
	if err != nil {
		return err
	}
	if negated {
		res = dispatch.Invert(res, m.Assertion, subject, m.Params)
	}
	if res.Passed {
		return nil
	}
	return res.Failure
}

// Register composes the checker's catalog with additional assertions
// and returns a new checker. The receiver is unchanged. Colliding
// assertions surface as a DuplicateAssertionError.
func (c *Checker) Register(assertions ...*catalog.Assertion) (*Checker, error) {
	added, err := catalog.NewCatalog(assertions...)
	if err != nil {
		return nil, err
	}
	merged, err := catalog.Merge(c.catalog, added)
	if err != nil {
		return nil, err
	}
	next := &Checker{catalog: merged, log: c.log, timeout: c.timeout}
	next.matcher = dispatch.NewMatcher(merged.All(), dispatch.WithLogger(next.log))
	return next, nil
}

// Embed defers an assertion so it can stand in for a value inside a
// satisfy-class template.
func (c *Checker) Embed(args ...any) *embed.Placeholder {
	return embed.New(c.matcher, args...)
}

// Catalog exposes the checker's assertion catalog, mainly for tooling.
func (c *Checker) Catalog() *catalog.Catalog {
	return c.catalog
}

// AllOf combines embedded assertions; the value must satisfy every one.
func AllOf(parts ...*embed.Placeholder) *embed.Conjunction {
	return embed.All(parts...)
}

// stripWithin pulls Within options out of the argument list. The last
// one wins.
func stripWithin(args []any) ([]any, time.Duration) {
	var within time.Duration
	tokens := make([]any, 0, len(args))
	for _, a := range args {
		if w, isWithin := a.(withinToken); isWithin {
			within = w.d
			continue
		}
		tokens = append(tokens, a)
	}
	return tokens, within
}

// std is the package-level checker over the builtin catalog.
var std = NewChecker(builtin.Catalog())

// Check runs a synchronous assertion against the builtin catalog.
func Check(subject any, args ...any) error {
	return std.Check(subject, args...)
}

// CheckAsync runs an assertion against the builtin catalog from the
// asynchronous entry point.
func CheckAsync(ctx context.Context, subject any, args ...any) error {
	return std.CheckAsync(ctx, subject, args...)
}

// Register extends the builtin catalog into a new checker.
func Register(assertions ...*catalog.Assertion) (*Checker, error) {
	return std.Register(assertions...)
}

// Embed defers an assertion against the builtin catalog.
func Embed(args ...any) *embed.Placeholder {
	return std.Embed(args...)
}

// Default returns the package-level checker.
func Default() *Checker {
	return std
}
