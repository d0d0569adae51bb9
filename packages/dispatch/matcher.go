package dispatch

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
)

// Match is the resolved result of a dispatch: the winning assertion and
// the parameter tokens its slots consumed, in order.
type Match struct {
	Assertion *catalog.Assertion
	Params    []any
}

// Candidate is the ephemeral per-call record of testing one assertion
// against one call. Discarded once dispatch resolves.
type Candidate struct {
	Assertion      *catalog.Assertion
	Params         []any
	Specificity    int
	TypeMismatch   bool
	MismatchDetail string
}

// Matcher resolves calls against a fixed assertion list. It is a pure
// function of its inputs; identical calls resolve identically.
type Matcher struct {
	assertions []*catalog.Assertion
	phrases    []string
	log        *zap.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLogger installs a debug logger for dispatch decisions.
func WithLogger(l *zap.Logger) MatcherOption {
	return func(m *Matcher) {
		m.log = l
	}
}

// NewMatcher builds a matcher over the given assertions.
func NewMatcher(assertions []*catalog.Assertion, opts ...MatcherOption) *Matcher {
	m := &Matcher{assertions: assertions, log: zap.NewNop()}
	for _, a := range assertions {
		m.phrases = append(m.phrases, a.Phrase())
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match finds the unique best assertion for the call. Tokens are the
// caller's arguments after negation stripping: candidate phrase strings
// interleaved with parameters.
func (m *Matcher) Match(subject any, tokens []any) (*Match, error) {
	var clean []*Candidate
	var mismatched []*Candidate

	for _, a := range m.assertions {
		cand, matched := tryMatch(a, subject, tokens)
		if !matched {
			continue
		}
		if cand.TypeMismatch {
			mismatched = append(mismatched, cand)
		} else {
			clean = append(clean, cand)
		}
		m.log.Debug("dispatch candidate",
			zap.String("assertion", a.ID()),
			zap.Int("specificity", cand.Specificity),
			zap.Bool("typeMismatch", cand.TypeMismatch))
	}

	if len(clean) == 0 {
		return nil, m.unknown(tokens, mismatched)
	}

	best := clean[0]
	tied := []*Candidate{best}
	for _, cand := range clean[1:] {
		switch {
		case cand.Specificity > best.Specificity:
			best = cand
			tied = tied[:0]
			tied = append(tied, cand)
		case cand.Specificity == best.Specificity:
			tied = append(tied, cand)
		}
	}
	if len(tied) > 1 {
		ids := make([]string, len(tied))
		for i, cand := range tied {
			ids[i] = cand.Assertion.ID()
		}
		return nil, &AmbiguousAssertionError{Phrase: calledPhrase(tokens), IDs: ids}
	}

	m.log.Debug("dispatch resolved", zap.String("assertion", best.Assertion.ID()))
	return &Match{Assertion: best.Assertion, Params: best.Params}, nil
}

func (m *Matcher) unknown(tokens []any, mismatched []*Candidate) error {
	err := &UnknownAssertionError{Phrase: calledPhrase(tokens)}
	if len(mismatched) > 0 {
		for _, cand := range mismatched {
			err.TypeMismatches = append(err.TypeMismatches,
				fmt.Sprintf("%s (%s)", cand.Assertion.ID(), cand.MismatchDetail))
		}
		return err
	}
	err.Nearest = nearest(err.Phrase, m.phrases)
	return err
}

// tryMatch walks one assertion's parts over the call. A false return
// means the phrase or arity did not line up at all; a candidate with
// TypeMismatch set means only a slot's structural check failed.
func tryMatch(a *catalog.Assertion, subject any, tokens []any) (*Candidate, bool) {
	cand := &Candidate{Assertion: a, Specificity: a.Specificity()}
	ti := 0

	for i, part := range a.Parts() {
		switch part.Kind {
		case catalog.PartPhrase:
			if ti >= len(tokens) {
				return nil, false
			}
			word, isStr := tokens[ti].(string)
			if !isStr || !hasAlias(part.Phrases, word) {
				return nil, false
			}
			ti++
		case catalog.PartSlot:
			var tok any
			if i == 0 {
				tok = subject
			} else {
				if ti >= len(tokens) {
					return nil, false
				}
				tok = tokens[ti]
				ti++
				cand.Params = append(cand.Params, tok)
			}
			if chk := part.Slot.Check(); chk != nil {
				if r := chk.Validate(tok); !r.Success {
					cand.TypeMismatch = true
					cand.MismatchDetail = fmt.Sprintf("%s: %v", part.Slot.Name, r.Err)
				}
			}
		}
	}

	if ti != len(tokens) {
		return nil, false
	}
	return cand, true
}

func hasAlias(aliases []string, word string) bool {
	for _, a := range aliases {
		if strings.EqualFold(a, word) {
			return true
		}
	}
	return false
}

// calledPhrase joins the string tokens of a call for diagnostics.
func calledPhrase(tokens []any) string {
	var words []string
	for _, tok := range tokens {
		if s, isStr := tok.(string); isStr {
			words = append(words, s)
		}
	}
	return strings.Join(words, " ")
}

// nearest picks the catalog phrase with the smallest edit distance.
func nearest(phrase string, phrases []string) string {
	best := ""
	bestDist := -1
	for _, p := range phrases {
		d := levenshtein(phrase, p)
		if bestDist < 0 || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
