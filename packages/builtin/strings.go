package builtin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

// Strings covers the string phrase family.
func Strings() *catalog.Catalog {
	return catalog.MustCatalog(
		catalog.MustNew("to contain <needle:string>",
			catalog.Describer(func(subject any, params ...any) error {
				s := subject.(string)
				needle := params[0].(string)
				if strings.Contains(s, needle) {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %q to contain %q", s, needle),
				}
			}), catalog.WithSubject(catalog.SlotString)),

		catalog.MustNew("(to start with|to begin with) <prefix:string>",
			catalog.Describer(func(subject any, params ...any) error {
				s := subject.(string)
				prefix := params[0].(string)
				if strings.HasPrefix(s, prefix) {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %q to start with %q", s, prefix),
				}
			}), catalog.WithSubject(catalog.SlotString)),

		catalog.MustNew("to end with <suffix:string>",
			catalog.Describer(func(subject any, params ...any) error {
				s := subject.(string)
				suffix := params[0].(string)
				if strings.HasSuffix(s, suffix) {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %q to end with %q", s, suffix),
				}
			}), catalog.WithSubject(catalog.SlotString)),

		catalog.MustNew("to match <pattern:pattern>",
			catalog.Describer(func(subject any, params ...any) error {
				s := subject.(string)
				re := params[0].(*regexp.Regexp)
				if re.MatchString(s) {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected %q to match /%s/", s, re.String()),
				}
			}), catalog.WithSubject(catalog.SlotString)),

		catalog.MustNew("to be a UUID",
			catalog.Describer(func(subject any, _ ...any) error {
				s, isStr := subject.(string)
				if !isStr {
					return &outcome.Failure{Message: fmt.Sprintf("expected a string subject, got %T", subject)}
				}
				if _, err := uuid.Parse(s); err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("expected %q to be a UUID: %v", s, err),
					}
				}
				return nil
			}), catalog.WithSubject(catalog.SlotString)),
	)
}
