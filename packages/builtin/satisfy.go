package builtin

import (
	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
	"github.com/abdul-hamid-achik/checkspec/packages/synth"
)

// Satisfy covers the structural-matching family. Templates are
// synthesized into validators; embedded placeholders inside them defer
// to nested assertions.
func Satisfy() *catalog.Catalog {
	return catalog.MustCatalog(
		catalog.MustNew("to satisfy <template>",
			catalog.Builder(func(_ any, params ...any) (schema.Validator, error) {
				return synth.Build(params[0], synth.Options{
					PatternMatch:      true,
					StrictEmptyObject: true,
				})
			})),

		catalog.MustNew("(to exhaustively satisfy|to exactly satisfy) <template>",
			catalog.Builder(func(_ any, params ...any) (schema.Validator, error) {
				return synth.Build(params[0], synth.Options{
					Exact:             true,
					PatternMatch:      true,
					StrictEmptyObject: true,
				})
			})),

		catalog.MustNew("to have the shape of <template>",
			catalog.Builder(func(_ any, params ...any) (schema.Validator, error) {
				return synth.Build(params[0], synth.Options{
					TypeOnly:            true,
					CollapseHomogeneous: true,
				})
			})),
	)
}
