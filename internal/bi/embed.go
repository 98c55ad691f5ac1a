// Package bi embeds the externally hosted BI dashboard.
package bi

import (
	"net/url"
	"strings"
)

// Embed is a validated BI dashboard URL. The zero value means "not configured".
type Embed struct {
	raw    string
	origin string
}

// ParseEmbed accepts absolute http(s) URLs. Anything else yields the zero Embed
// and ok=false for a non-empty input.
func ParseEmbed(raw string) (Embed, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Embed{}, true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Embed{}, false
	}
	return Embed{raw: u.String(), origin: u.Scheme + "://" + u.Host}, true
}

// Configured reports whether an embed URL is set.
func (e Embed) Configured() bool {
	return e.raw != ""
}

// URL is the iframe source.
func (e Embed) URL() string {
	return e.raw
}

// Origin is the scheme and host allowed in the frame-src policy.
func (e Embed) Origin() string {
	return e.origin
}
