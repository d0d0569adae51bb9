// Package schema provides composable structural validators over arbitrary
// Go values.
//
// Validators never panic and never return plain errors from Validate;
// every outcome is a Result carrying either the validated value or a
// failure description. Combinators cover literals, kind checks, objects,
// arrays, unions, regular-expression patterns and back-references for
// cyclic value graphs.
package schema
