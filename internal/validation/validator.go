package validation

import (
	"fmt"
	"regexp"
)

// appNamePattern restricts app names to a conservative character class so
// they can be used verbatim as partition keys and URL path segments.
var appNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// AppName validates a client-supplied app name before any store access.
func AppName(name string) error {
	if name == "" {
		return fmt.Errorf("missing app_name")
	}
	if !appNamePattern.MatchString(name) {
		return fmt.Errorf("invalid app_name: only letters, digits, '_' and '-' are allowed")
	}
	return nil
}
