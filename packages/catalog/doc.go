// Package catalog holds the immutable collection of assertion
// definitions a checker dispatches against.
//
// An Assertion is built from a phrase pattern written in a small
// mini-language:
//
//	to be a number
//	(to equal|to be) <value>
//	to be between <low:number> and <high:number>
//
// Plain words form literal phrase parts, parenthesized groups with |
// are interchangeable aliases, and <name> or <name:kind> declares a
// typed parameter slot. Catalogs compose append-only: merging returns a
// new catalog and never mutates an existing one.
package catalog
