// Package schemas validates the output artifact against its JSON Schema
// before it is handed to consumers.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// OutputSchemaPath is the repo-relative path of the output artifact schema.
const OutputSchemaPath = "schemas/dividends_data.schema.json"

// ResolveSchemaPath finds a schema file by trying the path relative to the
// working directory and up to two parent directories, since the CLI and tests
// run from different locations. Returns "" when nothing exists.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}
	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}
	return ""
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates schema violations found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents a failure loading or parsing the schema itself.
type SchemaLoadError struct {
	Path  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Path, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateFile validates a JSON file on disk against a schema file.
func ValidateFile(schemaPath, jsonPath string) error {
	schemaAbs, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	jsonAbs, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	if _, err := os.Stat(schemaAbs); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbs)
	}
	if _, err := os.Stat(jsonAbs); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbs)
	}
	return validate(
		gojsonschema.NewReferenceLoader("file://"+schemaAbs),
		gojsonschema.NewReferenceLoader("file://"+jsonAbs),
		schemaAbs,
	)
}

// ValidateBytes validates in-memory JSON content against in-memory schema
// content.
func ValidateBytes(schemaContent, jsonContent []byte) error {
	return validate(
		gojsonschema.NewBytesLoader(schemaContent),
		gojsonschema.NewBytesLoader(jsonContent),
		"(inline schema)",
	)
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader, schemaPath string) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
