package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

// DefaultTimeout bounds timeout-aware assertions when no Within option
// is given.
const DefaultTimeout = 5 * time.Second

type asyncResult struct {
	res *outcome.Result
	err error
}

// RunAsync executes a matched assertion from the asynchronous entry
// point. Synchronous implementations run inline. For timeout-aware
// assertions the wait races a timer; whichever settles first wins, and
// the loser's resources (the timer, the derived context and its
// listeners) are released on every exit path.
func RunAsync(ctx context.Context, a *catalog.Assertion, subject any, params []any, within time.Duration) (*outcome.Result, error) {
	if !a.IsAsync() {
		return Run(a, subject, params)
	}

	if !a.TimeoutAware() {
		return runAsyncImpl(ctx, a, subject, params)
	}

	if within <= 0 {
		within = DefaultTimeout
	}
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan asyncResult, 1)
	go func() {
		res, err := runAsyncImpl(waitCtx, a, subject, params)
		done <- asyncResult{res: res, err: err}
	}()

	timer := time.NewTimer(within)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.res, r.err
	case <-timer.C:
		cancel()
		return outcome.Fail(&outcome.Failure{
			AssertionID: a.ID(),
			Phrase:      a.Phrase(),
			Subject:     subject,
			Message:     fmt.Sprintf("timed out after %s waiting for %v %s", within, subject, a.Describe(params)),
		}), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func runAsyncImpl(ctx context.Context, a *catalog.Assertion, subject any, params []any) (*outcome.Result, error) {
	switch impl := a.Impl().(type) {
	case catalog.AsyncPredicate:
		held, err := impl(ctx, subject, params...)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return outcome.Fail(genericFailure(a, subject, params)), nil
		}
		if held {
			return outcome.Pass(), nil
		}
		return outcome.Fail(genericFailure(a, subject, params)), nil
	case catalog.AsyncDescriber:
		return describeOutcome(a, subject, impl(ctx, subject, params...))
	case catalog.AsyncBuilder:
		v, err := impl(ctx, subject, params...)
		if err != nil {
			return describeOutcome(a, subject, err)
		}
		return validatorOutcome(a, subject, v), nil
	default:
		return Run(a, subject, params)
	}
}
