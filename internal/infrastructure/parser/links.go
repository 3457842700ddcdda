package parser

import (
	"net/url"
	"regexp"
	"strings"
)

const redirectMarker = "/sspa/click"

var productIDExpr = regexp.MustCompile(`(?:^|/)dp/([^/?#]+)`)

// UnwrapRedirect decodes the real destination of a sponsored-click link from
// its "url" query parameter. It reports false when href carries no destination.
func UnwrapRedirect(href string) (string, bool) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	values, ok := parsed.Query()["url"]
	if !ok || len(values) == 0 {
		return "", false
	}

	// The destination is encoded twice by the wrapper.
	dest := values[0]
	if decoded, err := url.PathUnescape(dest); err == nil {
		dest = decoded
	}
	if dest == "" {
		return "", false
	}
	return dest, true
}

// CanonicalURL unwraps redirect links and joins relative paths to baseURL.
func CanonicalURL(baseURL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	if strings.Contains(href, redirectMarker) {
		dest, ok := UnwrapRedirect(href)
		if !ok {
			return "", false
		}
		href = dest
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href, true
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return strings.TrimSuffix(baseURL, "/") + href, true
}

// ExternalID returns the path segment following "dp" in a product URL.
func ExternalID(productURL string) *string {
	path := productURL
	if parsed, err := url.Parse(productURL); err == nil {
		path = parsed.Path
	}

	match := productIDExpr.FindStringSubmatch(path)
	if len(match) < 2 {
		return nil
	}
	id := match[1]
	return &id
}
