package notification

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9]*)\}`)

// renderTemplate substitutes {placeholder} tokens in the template text.
// An unresolved placeholder fails the render so a half-filled email never
// leaves the system.
func renderTemplate(text string, data map[string]string) (string, error) {
	var missing []string
	rendered := placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		key := token[1 : len(token)-1]
		value, ok := data[key]
		if !ok {
			missing = append(missing, key)
			return token
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unresolved template placeholders: %s", strings.Join(missing, ", "))
	}
	return rendered, nil
}
