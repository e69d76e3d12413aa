package engine

import (
	"net/url"
	"strings"
)

// ResolveURL turns href into an absolute URL against origin.
//
//	"https://x/y" -> unchanged
//	"//cdn/x"     -> origin scheme + "//cdn/x"
//	"/path"       -> scheme://host/path
//	"path"        -> origin + "/" + path (one slash, origin path kept)
//
// Empty, "#" and javascript: hrefs resolve to "".
func ResolveURL(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	base, err := url.Parse(origin)
	if err != nil || base.Host == "" {
		return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(href, "/")
	}

	if strings.HasPrefix(href, "//") {
		return base.Scheme + ":" + href
	}
	if strings.HasPrefix(href, "/") {
		return base.Scheme + "://" + base.Host + href
	}
	return strings.TrimRight(origin, "/") + "/" + href
}

// Origin returns scheme://host of rawURL, or rawURL unchanged if it does not parse.
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}
