package ingest

import (
	"net/url"
	"strings"
)

// resolveURL turns a link's href into an absolute, canonical URL. Hrefs that
// do not parse are returned trimmed but otherwise untouched.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	return CanonicalizeURL(ref.String())
}

var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "mc_cid": true, "mc_eid": true, "mkt_tok": true, "s_cid": true,
}

// CanonicalizeURL removes common tracking parameters to ensure stable URLs.
func CanonicalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	// The query is only re-encoded when something was removed, so untouched
	// links keep their original parameter order and escaping.
	q := u.Query()
	removed := false
	for k := range q {
		if strings.HasPrefix(k, "utm_") || trackingParams[k] {
			q.Del(k)
			removed = true
		}
	}
	if removed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
