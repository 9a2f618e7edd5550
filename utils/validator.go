// utils/validator.go - Input validation
package utils

import (
	"strings"
)

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// RequiredField pairs a form field name with its submitted value.
type RequiredField struct {
	Name  string
	Value string
}

// FirstEmpty returns the name of the first field whose value is blank.
func FirstEmpty(fields ...RequiredField) (string, bool) {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return f.Name, true
		}
	}
	return "", false
}
