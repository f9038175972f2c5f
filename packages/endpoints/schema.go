package endpoints

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// fileSchema describes the shape of a definitions file. Structural problems
// are reported from here with field paths; semantic checks (method values,
// duplicate names) stay in Parse.
const fileSchema = `{
	"type": "object",
	"required": ["endpoints"],
	"properties": {
		"endpoints": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "method", "path"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"method": {"type": "string", "enum": ["GET", "POST", "PUT", "DELETE"]},
					"path": {"type": "string", "pattern": "^/"},
					"description": {"type": "string"},
					"successMsg": {"type": "string"},
					"errorMsg": {"type": "string"},
					"params": {"type": "object", "additionalProperties": {"type": "string"}}
				},
				"additionalProperties": false
			}
		}
	}
}`

// ValidateFile checks raw YAML against the definitions-file schema and
// returns one message per violation.
func ValidateFile(data []byte) ([]string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse endpoints file: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(fileSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validate endpoints file: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}
	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return problems, nil
}
