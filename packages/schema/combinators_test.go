package schema

import (
	"math"
	"regexp"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral_Primitives(t *testing.T) {
	tests := []struct {
		name    string
		want    any
		cand    any
		success bool
	}{
		{name: "equal strings", want: "hi", cand: "hi", success: true},
		{name: "unequal strings", want: "hi", cand: "ho", success: false},
		{name: "cross-type numbers", want: 5, cand: 5.0, success: true},
		{name: "unequal numbers", want: 5, cand: 6, success: false},
		{name: "NaN matches itself", want: math.NaN(), cand: math.NaN(), success: true},
		{name: "NaN vs number", want: math.NaN(), cand: 1.0, success: false},
		{name: "nil matches nil", want: nil, cand: nil, success: true},
		{name: "nil vs zero", want: nil, cand: 0, success: false},
		{name: "bool", want: true, cand: true, success: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Literal(tt.want).Validate(tt.cand)
			assert.Equal(t, tt.success, r.Success)
			if !tt.success {
				assert.Error(t, r.Err)
			}
		})
	}
}

func TestOfKind(t *testing.T) {
	assert.True(t, OfKind(KindNumber).Validate(3).Success)
	assert.True(t, OfKind(KindString).Validate("s").Success)
	assert.False(t, OfKind(KindNumber).Validate("3").Success)

	r := OfKind(KindArray).Validate(map[string]any{})
	require.False(t, r.Success)
	assert.Contains(t, r.Err.Error(), "expected a array")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		v    any
		kind Kind
	}{
		{name: "nil", v: nil, kind: KindNil},
		{name: "int", v: 1, kind: KindNumber},
		{name: "float", v: 1.5, kind: KindNumber},
		{name: "string", v: "x", kind: KindString},
		{name: "bool", v: false, kind: KindBool},
		{name: "slice", v: []any{1}, kind: KindArray},
		{name: "map", v: map[string]any{}, kind: KindObject},
		{name: "struct", v: struct{ A int }{}, kind: KindObject},
		{name: "func", v: func() {}, kind: KindCallable},
		{name: "pattern", v: regexp.MustCompile("x"), kind: KindPattern},
		{name: "error", v: errors.New("e"), kind: KindError},
		{name: "channel", v: make(chan any), kind: KindChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.v))
		})
	}
}

func TestPattern_MatchesStringified(t *testing.T) {
	re := regexp.MustCompile(`^\d+$`)
	assert.True(t, Pattern(re).Validate("12345").Success)
	assert.True(t, Pattern(re).Validate(42).Success)
	assert.False(t, Pattern(re).Validate("12a").Success)
}

func TestPatternLiteral_RequiresEqualPattern(t *testing.T) {
	re := regexp.MustCompile(`abc`)
	assert.True(t, PatternLiteral(re).Validate(re).Success)
	assert.True(t, PatternLiteral(re).Validate(regexp.MustCompile(`abc`)).Success)
	assert.False(t, PatternLiteral(re).Validate("abc").Success)
	assert.False(t, PatternLiteral(re).Validate(regexp.MustCompile(`abd`)).Success)
}

func TestObject_SatisfyIgnoresExtraKeys(t *testing.T) {
	v := Object(map[string]Validator{"id": Literal(1)}, false)

	assert.True(t, v.Validate(map[string]any{"id": 1, "extra": "x"}).Success)

	r := v.Validate(map[string]any{"extra": "x"})
	require.False(t, r.Success)
	assert.Contains(t, r.Err.Error(), `missing key "id"`)
}

func TestObject_ExactRejectsExtraKeys(t *testing.T) {
	v := Object(map[string]Validator{"id": Literal(1)}, true)

	assert.True(t, v.Validate(map[string]any{"id": 1}).Success)

	r := v.Validate(map[string]any{"id": 1, "extra": "x"})
	require.False(t, r.Success)
	assert.Contains(t, r.Err.Error(), "extra key")
	assert.Contains(t, r.Err.Error(), "extra")
}

func TestObject_StructCandidate(t *testing.T) {
	type user struct {
		Name string
		Age  int
	}
	v := Object(map[string]Validator{"Name": Literal("Ada")}, false)
	assert.True(t, v.Validate(user{Name: "Ada", Age: 36}).Success)
	assert.False(t, v.Validate(user{Name: "Bob"}).Success)
}

func TestEmptyObject(t *testing.T) {
	assert.True(t, EmptyObject().Validate(map[string]any{}).Success)
	assert.False(t, EmptyObject().Validate(map[string]any{"a": 1}).Success)
	assert.False(t, EmptyObject().Validate("not an object").Success)
}

func TestArray_LengthRules(t *testing.T) {
	elems := []Validator{Literal(1), Literal(2)}

	loose := Array(elems, true)
	assert.True(t, loose.Validate([]any{1, 2}).Success)
	assert.True(t, loose.Validate([]any{1, 2, 3}).Success)
	assert.False(t, loose.Validate([]any{1}).Success)

	strict := Array(elems, false)
	assert.True(t, strict.Validate([]any{1, 2}).Success)
	assert.False(t, strict.Validate([]any{1, 2, 3}).Success)
}

func TestEach(t *testing.T) {
	v := Each(OfKind(KindNumber))
	assert.True(t, v.Validate([]any{1, 2, 3}).Success)
	assert.True(t, v.Validate([]any{}).Success)

	r := v.Validate([]any{1, "two"})
	require.False(t, r.Success)
	assert.Contains(t, r.Err.Error(), "element 1")
}

func TestEachN(t *testing.T) {
	v := EachN(OfKind(KindNumber), 2)
	assert.True(t, v.Validate([]any{1, 2}).Success)
	assert.False(t, v.Validate([]any{1, 2, 3}).Success)
}

func TestUnion(t *testing.T) {
	v := Union(OfKind(KindNumber), OfKind(KindString))
	assert.True(t, v.Validate(1).Success)
	assert.True(t, v.Validate("s").Success)
	assert.False(t, v.Validate(true).Success)
}

func TestErrorMatching(t *testing.T) {
	sentinel := errors.New("boom")

	v := ErrorMatching(sentinel)
	assert.True(t, v.Validate(sentinel).Success)
	assert.True(t, v.Validate(errors.Wrap(sentinel, "context")).Success)
	assert.True(t, v.Validate(errors.New("boom")).Success)
	assert.False(t, v.Validate(errors.New("bang")).Success)
	assert.False(t, v.Validate("boom").Success)
}

func TestAllOf_NamesEveryFailingPart(t *testing.T) {
	v := AllOf(OfKind(KindNumber), Satisfies("positive", func(c any) bool {
		n, isNum := c.(int)
		return isNum && n > 0
	}))

	assert.True(t, v.Validate(3).Success)

	r := v.Validate("nope")
	require.False(t, r.Success)
	assert.Contains(t, r.Err.Error(), "a number")
	assert.Contains(t, r.Err.Error(), "positive")
}

func TestRef_CyclicCandidate(t *testing.T) {
	// A template shaped like {self: <back-reference>} against a candidate
	// that points at itself must terminate and pass.
	ref := NewRef()
	obj := Object(map[string]Validator{"self": ref}, false)
	ref.Resolve(obj)

	cand := map[string]any{}
	cand["self"] = cand

	assert.True(t, obj.Validate(cand).Success)
}

func TestRef_Unresolved(t *testing.T) {
	r := NewRef().Validate(1)
	require.False(t, r.Success)
	assert.Contains(t, r.Err.Error(), "unresolved")
}

func TestFields(t *testing.T) {
	fields, isObj := Fields(map[string]any{"a": 1})
	require.True(t, isObj)
	assert.Equal(t, 1, fields["a"])

	type pair struct {
		X int
		y int
	}
	fields, isObj = Fields(pair{X: 1, y: 2})
	require.True(t, isObj)
	assert.Equal(t, map[string]any{"X": 1}, fields)

	_, isObj = Fields(map[int]string{1: "a"})
	assert.False(t, isObj)

	_, isObj = Fields([]any{1})
	assert.False(t, isObj)
}
