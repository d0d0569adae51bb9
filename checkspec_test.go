package checkspec_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/checkspec"
	"github.com/abdul-hamid-achik/checkspec/packages/builtin"
	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/core/config"
	"github.com/abdul-hamid-achik/checkspec/packages/dispatch"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

func TestCheck_BasicDispatch(t *testing.T) {
	assert.NoError(t, checkspec.Check(42, "to be a number"))

	err := checkspec.Check("42", "to be a number")
	require.Error(t, err)
	assert.True(t, outcome.IsFailure(err))
}

func TestCheck_FailureIdentity(t *testing.T) {
	err := checkspec.Check("42", "to be a number")
	f, isFailure := outcome.AsFailure(err)
	require.True(t, isFailure)
	assert.Equal(t, "<any> to be a number", f.AssertionID)
}

func TestCheck_Negation(t *testing.T) {
	assert.NoError(t, checkspec.Check("42", "not", "to be a number"))
	assert.NoError(t, checkspec.Check("42", "not to be a number"))

	err := checkspec.Check(42, "not to be a number")
	require.Error(t, err)
	f, isFailure := outcome.AsFailure(err)
	require.True(t, isFailure)
	assert.Contains(t, f.Message, "not")
}

func TestCheck_NegatedFailureNamesFullPhrase(t *testing.T) {
	// Interleaved literals keep their position around the parameters.
	err := checkspec.Check(5, "not", "to be between", 1, "and", 10)
	require.Error(t, err)
	f, isFailure := outcome.AsFailure(err)
	require.True(t, isFailure)
	assert.Equal(t, "expected 5 not to be between 1 and 10, but the assertion passed", f.Message)
}

func TestCheck_NegationIsInvolutionOnPolarity(t *testing.T) {
	subjects := []any{42, "42", nil, []any{1}, map[string]any{"a": 1}}
	phrases := []string{"to be a number", "to be a string", "to be nil", "to be empty"}

	for _, subject := range subjects {
		for _, phrase := range phrases {
			plain := checkspec.Check(subject, phrase)
			negated := checkspec.Check(subject, "not "+phrase)

			if _, isFailure := outcome.AsFailure(plain); isFailure {
				assert.NoError(t, negated, "subject %v phrase %q", subject, phrase)
			} else if plain == nil {
				assert.True(t, outcome.IsFailure(negated), "subject %v phrase %q", subject, phrase)
			}
		}
	}
}

func TestCheck_DoubleNegationIsAnError(t *testing.T) {
	err := checkspec.Check(42, "not", "not", "to be a number")
	require.Error(t, err)

	var dbl *dispatch.DoubleNegationError
	assert.ErrorAs(t, err, &dbl)
	assert.False(t, outcome.IsFailure(err), "a dispatch error is not a validation failure")
}

func TestCheck_UnknownAssertion(t *testing.T) {
	err := checkspec.Check(42, "to be a nmuber")
	require.Error(t, err)

	var unknown *dispatch.UnknownAssertionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "to be a number", unknown.Nearest)
}

func TestCheck_NotToHaveKey(t *testing.T) {
	obj := map[string]any{"present": 1}

	assert.NoError(t, checkspec.Check(obj, "not to have key", "missing"))
	assert.True(t, outcome.IsFailure(checkspec.Check(obj, "not to have key", "present")))
}

func TestRegister_ExtendsWithoutMutating(t *testing.T) {
	custom := catalog.MustNew("to be shouty", catalog.Predicate(func(subject any, _ ...any) bool {
		s, isStr := subject.(string)
		if !isStr || s == "" {
			return false
		}
		for _, r := range s {
			if r >= 'a' && r <= 'z' {
				return false
			}
		}
		return true
	}), catalog.WithSubject(catalog.SlotString))

	extended, err := checkspec.Register(custom)
	require.NoError(t, err)

	assert.NoError(t, extended.Check("LOUD", "to be shouty"))
	assert.True(t, outcome.IsFailure(extended.Check("quiet", "to be shouty")))

	// The default checker never learns the new phrase.
	var unknown *dispatch.UnknownAssertionError
	assert.ErrorAs(t, checkspec.Check("LOUD", "to be shouty"), &unknown)

	// Builtins still resolve on the extended checker.
	assert.NoError(t, extended.Check(42, "to be a number"))
}

func TestRegister_DuplicateCollision(t *testing.T) {
	dup := catalog.MustNew("to be a number", catalog.Predicate(func(subject any, _ ...any) bool {
		return true
	}))

	_, err := checkspec.Register(dup)
	require.Error(t, err)

	var collision *catalog.DuplicateAssertionError
	assert.ErrorAs(t, err, &collision)
}

func TestRegister_ByteIdenticalAssertionsCollideAtRegistration(t *testing.T) {
	a := catalog.MustNew("to glisten", catalog.Predicate(func(subject any, _ ...any) bool { return true }))
	b := catalog.MustNew("to glisten", catalog.Predicate(func(subject any, _ ...any) bool { return true }))

	_, err := checkspec.NewChecker(builtin.Catalog()).Register(a, b)
	var collision *catalog.DuplicateAssertionError
	require.ErrorAs(t, err, &collision)
}

func TestEmbed_InsideSatisfyTemplate(t *testing.T) {
	subject := map[string]any{"id": 7, "name": "Ada"}

	err := checkspec.Check(subject, "to satisfy", map[string]any{
		"id":   checkspec.Embed("to be a number"),
		"name": checkspec.Embed("to contain", "d"),
	})
	assert.NoError(t, err)

	err = checkspec.Check(subject, "to satisfy", map[string]any{
		"id": checkspec.Embed("to be a string"),
	})
	assert.True(t, outcome.IsFailure(err))
}

func TestEmbed_NegatedInsideTemplate(t *testing.T) {
	subject := map[string]any{"id": "x"}

	assert.NoError(t, checkspec.Check(subject, "to satisfy", map[string]any{
		"id": checkspec.Embed("not", "to be a number"),
	}))
}

func TestAllOf_ConjunctionInsideTemplate(t *testing.T) {
	subject := map[string]any{"count": 7}

	assert.NoError(t, checkspec.Check(subject, "to satisfy", map[string]any{
		"count": checkspec.AllOf(
			checkspec.Embed("to be a number"),
			checkspec.Embed("to be greater than", 5),
		),
	}))

	assert.True(t, outcome.IsFailure(checkspec.Check(subject, "to satisfy", map[string]any{
		"count": checkspec.AllOf(
			checkspec.Embed("to be a number"),
			checkspec.Embed("to be greater than", 10),
		),
	})))
}

func TestCheckAsync_RunsSyncAssertions(t *testing.T) {
	assert.NoError(t, checkspec.CheckAsync(context.Background(), 42, "to be a number"))
}

func TestCheckAsync_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stuck := func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	err := checkspec.CheckAsync(ctx, stuck, "to resolve")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, outcome.IsFailure(err))
}

func TestNewChecker_WithConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timeout = 50

	c := checkspec.NewChecker(builtin.Catalog(), checkspec.WithConfig(cfg))

	stuck := func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	err := c.CheckAsync(context.Background(), stuck, "to resolve")
	require.True(t, outcome.IsFailure(err))
	assert.Contains(t, err.Error(), "timed out after 50ms")
}

func TestCheck_InternalErrorsPropagateVerbatim(t *testing.T) {
	boom := errors.New("assertion bug")
	buggy := catalog.MustNew("to misbehave", catalog.Describer(func(subject any, _ ...any) error {
		return boom
	}))

	c, err := checkspec.Register(buggy)
	require.NoError(t, err)

	err = c.Check(1, "to misbehave")
	assert.ErrorIs(t, err, boom)
	assert.False(t, outcome.IsFailure(err))
}
