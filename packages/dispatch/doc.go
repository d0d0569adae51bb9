// Package dispatch resolves a (subject, tokens) call against a catalog.
//
// Matching walks each assertion's parts over the token list: phrase
// parts consume one string token that must equal one of their aliases,
// typed slots consume the subject or a parameter token and must pass the
// slot's structural check. A slot failure is a non-match, not an error;
// such candidates are retained for "did you mean" diagnostics only.
// Among clean candidates the highest specificity wins, a top-score tie
// is ambiguous, and zero candidates is an unknown assertion with a
// nearest-phrase hint.
package dispatch
