// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateName checks that a display name is present and within bounds.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("Name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("Name must not exceed 100 characters")
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("Please include a valid email")
	}
	if len(email) > 254 {
		return fmt.Errorf("Email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks that a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("Please enter a password with 6 or more characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("Password must not exceed 128 characters")
	}
	return nil
}

// SplitSkills turns a comma-separated skills string into a trimmed,
// ordered list. Empty items are dropped: "a, b,c," -> ["a" "b" "c"].
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
