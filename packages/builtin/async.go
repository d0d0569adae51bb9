package builtin

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
	"github.com/abdul-hamid-achik/checkspec/packages/stream"
)

// Async covers the suspension-bearing family: settling pending results
// and draining asynchronous sequences. Every assertion here races its
// wait against the checker's timeout.
func Async() *catalog.Catalog {
	return catalog.MustCatalog(
		catalog.MustNew("to resolve",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, _ ...any) error {
				_, err, awaitable := await(ctx, subject)
				if !awaitable {
					return notAwaitable(subject)
				}
				if err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("expected the subject to resolve, but it rejected with %q", err),
					}
				}
				return nil
			}), catalog.WithTimeout()),

		catalog.MustNew("to resolve with <value>",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, params ...any) error {
				v, err, awaitable := await(ctx, subject)
				if !awaitable {
					return notAwaitable(subject)
				}
				if err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("expected the subject to resolve, but it rejected with %q", err),
					}
				}
				if literalEqual(v, params[0]) {
					return nil
				}
				return (&outcome.Failure{
					Message: fmt.Sprintf("expected the subject to resolve with %v, got %v", params[0], v),
				}).WithExpected(params[0]).WithActual(v)
			}), catalog.WithTimeout()),

		catalog.MustNew("to reject",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, _ ...any) error {
				_, err, awaitable := await(ctx, subject)
				if !awaitable {
					return notAwaitable(subject)
				}
				if err == nil {
					return &outcome.Failure{Message: "expected the subject to reject, but it resolved"}
				}
				return nil
			}), catalog.WithTimeout()),

		catalog.MustNew("to reject with a <target:error>",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, params ...any) error {
				want := params[0].(error)
				_, err, awaitable := await(ctx, subject)
				if !awaitable {
					return notAwaitable(subject)
				}
				if err == nil {
					return (&outcome.Failure{
						Message: fmt.Sprintf("expected the subject to reject with %q, but it resolved", want),
					}).WithExpected(want)
				}
				if errors.Is(err, want) || err.Error() == want.Error() {
					return nil
				}
				return (&outcome.Failure{
					Message: fmt.Sprintf("expected the subject to reject with %q, got %q", want, err),
				}).WithExpected(want).WithActual(err)
			}), catalog.WithTimeout()),

		catalog.MustNew("to yield <expected:array>",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, params ...any) error {
				src, isStream := asStream(subject)
				if !isStream {
					return notAwaitable(subject)
				}
				want, _ := schema.Elems(params[0])
				// Strictly sequential: never two pending elements at once.
				got, err := stream.Collect(ctx, src, len(want))
				if err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("the sequence failed after %d element(s): %v", len(got), err),
					}
				}
				if len(got) < len(want) {
					return (&outcome.Failure{
						Message: fmt.Sprintf("expected the sequence to yield %d element(s), got %d", len(want), len(got)),
					}).WithExpected(want).WithActual(got)
				}
				for i, w := range want {
					if !literalEqual(got[i], w) {
						return (&outcome.Failure{
							Message: fmt.Sprintf("element %d: expected %v, got %v", i, w, got[i]),
						}).WithExpected(w).WithActual(got[i])
					}
				}
				return nil
			}), catalog.WithTimeout()),

		catalog.MustNew("to complete",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, _ ...any) error {
				src, isStream := asStream(subject)
				if !isStream {
					return notAwaitable(subject)
				}
				if _, err := stream.Collect(ctx, src, 0); err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("expected the sequence to complete: %v", err),
					}
				}
				return nil
			}), catalog.WithTimeout()),

		catalog.MustNew("(to complete with|to yield exactly) <expected:array>",
			catalog.AsyncDescriber(func(ctx context.Context, subject any, params ...any) error {
				src, isStream := asStream(subject)
				if !isStream {
					return notAwaitable(subject)
				}
				want, _ := schema.Elems(params[0])
				got, err := stream.Collect(ctx, src, 0)
				if err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("the sequence failed after %d element(s): %v", len(got), err),
					}
				}
				if len(got) != len(want) {
					return (&outcome.Failure{
						Message: fmt.Sprintf("expected the sequence to complete with %d element(s), got %d", len(want), len(got)),
					}).WithExpected(want).WithActual(got)
				}
				for i, w := range want {
					if !literalEqual(got[i], w) {
						return (&outcome.Failure{
							Message: fmt.Sprintf("element %d: expected %v, got %v", i, w, got[i]),
						}).WithExpected(w).WithActual(got[i])
					}
				}
				return nil
			}), catalog.WithTimeout()),
	)
}

// await settles a pending subject: a function returning a value and an
// error, a function returning only an error, or a receive channel.
func await(ctx context.Context, subject any) (any, error, bool) {
	switch fn := subject.(type) {
	case func(context.Context) (any, error):
		v, err := fn(ctx)
		return v, err, true
	case func() (any, error):
		v, err := fn()
		return v, err, true
	case func(context.Context) error:
		return nil, fn(ctx), true
	case func() error:
		return nil, fn(), true
	case <-chan any:
		select {
		case v := <-fn:
			return v, nil, true
		case <-ctx.Done():
			return nil, ctx.Err(), true
		}
	case chan any:
		select {
		case v := <-fn:
			return v, nil, true
		case <-ctx.Done():
			return nil, ctx.Err(), true
		}
	default:
		return nil, nil, false
	}
}

func asStream(subject any) (stream.Stream, bool) {
	switch src := subject.(type) {
	case stream.Stream:
		return src, true
	case <-chan any:
		return stream.FromChannel(src), true
	case chan any:
		return stream.FromChannel(src), true
	default:
		return nil, false
	}
}

func notAwaitable(subject any) error {
	return &outcome.Failure{
		Message: fmt.Sprintf("the subject (%T) is not awaitable", subject),
	}
}
