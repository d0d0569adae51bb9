// Package builtin provides the standard assertion catalog: type and
// equality checks, numeric comparisons, string and collection phrases,
// the satisfy family backed by the validator synthesizer, JSON phrases,
// and the asynchronous resolve/reject/yield family.
//
// Each family is exported separately so callers can compose their own
// catalogs; Catalog merges all of them.
package builtin
