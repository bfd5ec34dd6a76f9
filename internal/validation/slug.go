package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9-]{3,64}$`)

// Reserved slugs collide with top-level routes and can never name a group.
var reservedSlugs = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"groups":   {},
	"posts":    {},
	"comments": {},
	"users":    {},
	"profile":  {},
	"follow":   {},
	"feed":     {},
	"login":    {},
	"signup":   {},
	"metrics":  {},
	"health":   {},
}

// ValidateSlug validates group slug format and reserved names.
func ValidateSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-64 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
