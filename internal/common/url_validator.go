package common

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned for links that are not absolute http(s) URLs
var ErrInvalidURL = errors.New("url must be an absolute http or https link")

// ValidateProductURL checks a product link supplied for an item or the scraper.
// Returns the trimmed URL.
func ValidateProductURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrInvalidURL
	}
	if u.Host == "" {
		return "", ErrInvalidURL
	}

	return raw, nil
}
