package charts

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatError reports a name that does not satisfy a label format.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %q: %s", e.Value, e.Reason)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

// FormatGeneration turns "generation-iii" into "Generation-III". The name
// must contain exactly one hyphen with text on both sides.
func FormatGeneration(name string) (string, error) {
	parts := strings.Split(name, "-")
	if len(parts) != 2 {
		return "", &FormatError{Value: name, Reason: fmt.Sprintf("expected exactly one hyphen, found %d", len(parts)-1)}
	}
	if parts[0] == "" || parts[1] == "" {
		return "", &FormatError{Value: name, Reason: "empty segment"}
	}
	return Capitalize(parts[0]) + "-" + strings.ToUpper(parts[1]), nil
}
