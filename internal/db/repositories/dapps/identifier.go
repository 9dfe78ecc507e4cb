package dapps

import (
	"net"
	"net/url"

	"golang.org/x/net/publicsuffix"

	"github.com/sealvault/sealvault-core/internal/common"
)

// SiteIdentifier computes the human-readable identifier of a dapp from its
// URL: the registrable domain (public-suffix list longest match plus one
// label) when one exists, otherwise the ASCII origin. The identifier is the
// dapp's natural key, so the same site always produces the same value.
func SiteIdentifier(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", common.Retriablef("failed to parse dapp url %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", common.Retriablef("dapp url %q has no origin", rawURL)
	}

	host := u.Hostname()
	if net.ParseIP(host) != nil {
		// IP addresses have no registrable domain.
		return u.Scheme + "://" + u.Host, nil
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// localhost and other suffix-only hosts; fall back to the origin.
		return u.Scheme + "://" + u.Host, nil
	}
	return domain, nil
}
