package outcome

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_ErrorUsesMessage(t *testing.T) {
	f := &Failure{Message: "expected something else"}
	assert.Equal(t, "expected something else", f.Error())
}

func TestFailure_ErrorFallsBackToPhrase(t *testing.T) {
	f := &Failure{Subject: 42, Phrase: "to be a string"}
	assert.Equal(t, `expected 42 to be a string`, f.Error())
}

func TestFailure_ExpectedActualRendering(t *testing.T) {
	f := (&Failure{Message: "mismatch"}).WithExpected(1).WithActual(2)

	msg := f.Error()
	assert.Contains(t, msg, "expected: 1")
	assert.Contains(t, msg, "actual:   2")
}

func TestFailure_DiffForCompositeValues(t *testing.T) {
	f := (&Failure{Message: "mismatch"}).
		WithExpected(map[string]any{"a": 1, "b": 2}).
		WithActual(map[string]any{"a": 1, "b": 3})

	assert.Contains(t, f.Error(), "diff (-expected +actual)")
}

func TestFailure_NoDiffForScalars(t *testing.T) {
	f := (&Failure{Message: "mismatch"}).WithExpected(1).WithActual(2)
	assert.NotContains(t, f.Error(), "diff")
}

func TestIsFailure(t *testing.T) {
	f := &Failure{Message: "m"}

	assert.True(t, IsFailure(f))
	assert.True(t, IsFailure(errors.Wrap(f, "context")))
	assert.False(t, IsFailure(errors.New("plain")))
	assert.False(t, IsFailure(nil))
}

func TestAsFailure_Unwraps(t *testing.T) {
	inner := &Failure{Message: "inner"}
	wrapped := errors.Wrap(inner, "outer")

	f, isFailure := AsFailure(wrapped)
	require.True(t, isFailure)
	assert.Equal(t, inner, f)

	_, isFailure = AsFailure(errors.New("plain"))
	assert.False(t, isFailure)
}

func TestPassAndFail(t *testing.T) {
	p := Pass()
	assert.True(t, p.Passed)
	assert.Nil(t, p.Failure)

	f := Fail(&Failure{Message: "m"})
	assert.False(t, f.Passed)
	require.NotNil(t, f.Failure)
}

func TestFormatValue_TruncatesLargeComposites(t *testing.T) {
	big := make([]any, 20)
	f := (&Failure{Message: "m"}).WithExpected(big).WithActual(big)
	assert.Contains(t, f.Error(), "[array with 20 items]")
}
