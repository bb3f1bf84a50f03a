package validation

import (
	"fmt"
	"regexp"
)

// Public post identifiers are 8 characters drawn from a URL-safe charset.
var publicIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{8}$`)

const maxPostBodyLen = 500

// ValidatePublicID checks the format of an externally supplied post identifier.
func ValidatePublicID(uid string) error {
	if !publicIDRegex.MatchString(uid) {
		return fmt.Errorf("invalid post identifier format")
	}
	return nil
}

// ValidatePostBody checks post body constraints.
func ValidatePostBody(body string) error {
	if body == "" {
		return fmt.Errorf("body is required")
	}
	if len(body) > maxPostBodyLen {
		return fmt.Errorf("body must not exceed %d characters", maxPostBodyLen)
	}
	return nil
}
