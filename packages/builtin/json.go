package builtin

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

// JSON covers assertions over JSON documents held in strings or byte
// slices, plus JSON Schema validation of arbitrary subjects.
func JSON() *catalog.Catalog {
	return catalog.MustCatalog(
		catalog.MustNew("to have JSON path <path:string>",
			catalog.Describer(func(subject any, params ...any) error {
				doc, err := jsonDocument(subject)
				if err != nil {
					return err
				}
				path := params[0].(string)
				if gjson.Get(doc, path).Exists() {
					return nil
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("expected JSON path %q to exist", path),
				}
			})),

		catalog.MustNew("to have JSON path <path:string> equal to <value>",
			catalog.Describer(func(subject any, params ...any) error {
				doc, err := jsonDocument(subject)
				if err != nil {
					return err
				}
				path := params[0].(string)
				res := gjson.Get(doc, path)
				if !res.Exists() {
					return &outcome.Failure{
						Message: fmt.Sprintf("expected JSON path %q to exist", path),
					}
				}
				if literalEqual(res.Value(), params[1]) {
					return nil
				}
				return (&outcome.Failure{
					Message: fmt.Sprintf("expected JSON path %q to equal %v, got %v", path, params[1], res.Value()),
				}).WithExpected(params[1]).WithActual(res.Value())
			})),

		catalog.MustNew("to match schema <schemaDoc>",
			catalog.Describer(func(subject any, params ...any) error {
				schemaLoader, err := loaderFor(params[0])
				if err != nil {
					return err
				}
				documentLoader, err := loaderFor(subject)
				if err != nil {
					return err
				}
				result, err := gojsonschema.Validate(schemaLoader, documentLoader)
				if err != nil {
					return &outcome.Failure{
						Message: fmt.Sprintf("schema validation error: %v", err),
					}
				}
				if result.Valid() {
					return nil
				}
				var descs []string
				for _, desc := range result.Errors() {
					descs = append(descs, desc.String())
				}
				return &outcome.Failure{
					Message: fmt.Sprintf("schema validation failed: %s", strings.Join(descs, "; ")),
				}
			})),
	)
}

func jsonDocument(subject any) (string, error) {
	switch doc := subject.(type) {
	case string:
		if !gjson.Valid(doc) {
			return "", &outcome.Failure{Message: "subject is not valid JSON"}
		}
		return doc, nil
	case []byte:
		if !gjson.ValidBytes(doc) {
			return "", &outcome.Failure{Message: "subject is not valid JSON"}
		}
		return string(doc), nil
	default:
		raw, err := json.Marshal(subject)
		if err != nil {
			return "", &outcome.Failure{Message: fmt.Sprintf("subject cannot be encoded as JSON: %v", err)}
		}
		return string(raw), nil
	}
}

func loaderFor(v any) (gojsonschema.JSONLoader, error) {
	switch doc := v.(type) {
	case string:
		return gojsonschema.NewStringLoader(doc), nil
	case []byte:
		return gojsonschema.NewBytesLoader(doc), nil
	default:
		return gojsonschema.NewGoLoader(doc), nil
	}
}
