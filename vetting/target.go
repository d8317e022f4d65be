package vetting

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL means there is no well-formed http(s) URL to assess.
var ErrInvalidURL = errors.New("invalid url")

// ParseTarget validates a tab URL. Only absolute http and https URLs with a
// host are assessable; browser-internal pages (chrome://, about:, file://) are not.
func ParseTarget(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, ErrInvalidURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	if u.Hostname() == "" {
		return nil, ErrInvalidURL
	}

	return u, nil
}
