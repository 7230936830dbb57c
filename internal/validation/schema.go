package validation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"followup-report/internal/models"
)

// LoadSchema loads a JSON schema from a file
func LoadSchema(schemaPath string) (*gojsonschema.Schema, error) {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return schema, nil
}

// ValidateOptions validates a report options JSON string against a schema
func ValidateOptions(optionsJSON string, schema *gojsonschema.Schema) error {
	documentLoader := gojsonschema.NewStringLoader(optionsJSON)
	result, err := schema.Validate(documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// ValidateAndParseOptions reads an options file, validates it against
// the schema and unmarshals it
func ValidateAndParseOptions(optionsPath, schemaPath string) (*models.ReportOptions, error) {
	optionsData, err := os.ReadFile(optionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := ValidateOptions(string(optionsData), schema); err != nil {
		return nil, err
	}

	var options models.ReportOptions
	if err := json.Unmarshal(optionsData, &options); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &options, nil
}
