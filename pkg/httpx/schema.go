package httpx

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// MustSchema compiles a JSON schema literal, panicking on a malformed schema.
func MustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("httpx: invalid schema: %v", err))
	}
	return s
}

// ValidateBody checks a raw JSON body against schema. The returned error is
// an INVALID_BODY validation error listing the failing fields.
func ValidateBody(schema *gojsonschema.Schema, body []byte) error {
	if len(body) == 0 {
		return ErrInvalidBody().WithDetail("body", "empty")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return ErrInvalidBody().WithDetail("body", "malformed JSON")
	}
	if result.Valid() {
		return nil
	}

	fields := make(map[string]string, len(result.Errors()))
	for _, re := range result.Errors() {
		fields[re.Field()] = re.Description()
	}
	return ErrInvalidBody().WithDetail("fields", fields)
}
