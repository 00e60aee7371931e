package verifier

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// manifestSchema is the JSON Schema every written manifest must satisfy.
// It mirrors the contract the on-device applier relies on: a semver
// version string and uniquely-pathed entries with absolute URLs and
// 64-character lowercase hex digests.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "files"],
  "additionalProperties": false,
  "properties": {
    "version": {
      "type": "string",
      "pattern": "^[0-9]+\\.[0-9]+\\.[0-9]+$"
    },
    "files": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path", "url", "sha256"],
        "additionalProperties": false,
        "properties": {
          "path": {"type": "string", "minLength": 1},
          "url": {"type": "string", "pattern": "^https?://"},
          "sha256": {"type": "string", "pattern": "^[0-9a-f]{64}$"}
        }
      }
    }
  }
}`

// validateSchema checks raw manifest JSON against the schema and returns
// a human-readable description per violation.
func validateSchema(document []byte) ([]string, error) {
	schemaLoader := gojsonschema.NewStringLoader(manifestSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate manifest schema: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}

	return violations, nil
}
