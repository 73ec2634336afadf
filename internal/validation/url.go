// Package validation checks values before they reach the operating system.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// LaunchSchemes are the schemes a quick-contact target may use.
var LaunchSchemes = []string{"https", "http", "mailto"}

// shellMeta are characters a URL handed to a launcher must not contain.
const shellMeta = ";&|`$()<>\"'\\\n\r "

// ValidateLaunchURL rejects URLs that could be misread by an OS launcher:
// schemes outside allowed, shell metacharacters, and web URLs without a host
// or mail URLs without an address.
func ValidateLaunchURL(rawURL string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = LaunchSchemes
	}

	if i := strings.IndexAny(rawURL, shellMeta); i >= 0 {
		return fmt.Errorf("URL contains forbidden character %q", rawURL[i])
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	ok := false
	for _, s := range allowed {
		if scheme == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid URL scheme %q (allowed: %s)", parsed.Scheme, strings.Join(allowed, ", "))
	}

	if scheme == "mailto" {
		if !strings.Contains(parsed.Opaque, "@") {
			return fmt.Errorf("mailto URL must name an address")
		}
		return nil
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid hostname")
	}

	return nil
}
