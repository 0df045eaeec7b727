package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists every schema violation found in a settings file
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings file is not valid: %s", strings.Join(e.Problems, "; "))
}

// Validate validates a host settings file against the JSON schema
func Validate(settingsFile string) error {
	abs, err := filepath.Abs(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to resolve settings file path: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(Schema)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs))

	return validate(schemaLoader, documentLoader)
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &ValidationError{Problems: problems}
	}

	return nil
}
