package valueobject

import (
	"fmt"
	"strings"
)

// ValidationMode selects how the extractor treats missing or malformed input.
// One mode is chosen per deployment.
type ValidationMode struct {
	value string
}

var (
	// ValidationDefaultFill substitutes documented defaults field by field.
	ValidationDefaultFill = ValidationMode{value: "default_fill"}
	// ValidationStrict rejects missing or malformed numeric and temporal fields.
	ValidationStrict = ValidationMode{value: "strict"}
)

// ValidationModeFromString parses a mode name. "default-fill" is accepted too.
func ValidationModeFromString(s string) (ValidationMode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "default_fill":
		return ValidationDefaultFill, nil
	case "strict":
		return ValidationStrict, nil
	default:
		return ValidationMode{}, fmt.Errorf("invalid validation mode: %q", s)
	}
}

func (m ValidationMode) String() string { return m.value }

func (m ValidationMode) IsStrict() bool { return m.value == "strict" }

func (m ValidationMode) IsZero() bool { return m.value == "" }
