package util

import (
	"net/url"
	"strings"
)

// AbsoluteURL resolves href against base. Already-absolute hrefs are
// returned unchanged; an empty href yields "".
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.Scheme != "" && ref.Host != "" {
		return ref.String()
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || b.Host == "" {
		return ""
	}
	return b.ResolveReference(ref).String()
}

// Origin returns scheme://host of raw, or raw itself when it cannot be parsed.
func Origin(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}
