package publish

import (
	"strings"

	"golang.org/x/net/idna"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// reservedSuffixes are domain suffixes that can never be bound to a site:
// special-use names plus the platform's own serving infrastructure.
var reservedSuffixes = []string{
	".local",
	".localhost",
	".internal",
	".test",
	".invalid",
	".example",
	".onion",
	".sitebuilder.app",
}

// ValidateCustomDomain checks a custom domain against standard hostname
// grammar and the reserved-suffix list. It returns the normalized (lower-case,
// punycoded) form to persist and hand to the provisioner.
func ValidateCustomDomain(domain string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(domain))
	trimmed = strings.TrimSuffix(trimmed, ".")
	if trimmed == "" {
		return "", errors.InvalidDomainFormat(domain, nil)
	}
	if strings.ContainsAny(trimmed, "/:@ ") {
		return "", errors.InvalidDomainFormat(domain, nil)
	}

	ascii, err := idna.Lookup.ToASCII(trimmed)
	if err != nil {
		return "", errors.InvalidDomainFormat(domain, err)
	}
	if !strings.Contains(ascii, ".") {
		// single-label hostnames are never routable customer domains
		return "", errors.InvalidDomainFormat(domain, nil)
	}

	for _, suffix := range reservedSuffixes {
		if strings.HasSuffix(ascii, suffix) || ascii == strings.TrimPrefix(suffix, ".") {
			return "", errors.ReservedDomain(ascii)
		}
	}

	return ascii, nil
}
