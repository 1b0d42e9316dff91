// Package rank reorders search results so hits from user-configured priority
// sites surface first, and normalizes result lists (URL canonicalization,
// de-duplication, capping).
package rank

import (
	"net/url"
	"strings"

	"devsearch/internal/search"
)

// PriorityList is an ordered list of site patterns. A pattern is a hostname
// with an optional path prefix, e.g. "stackoverflow.com" or
// "reddit.com/r/programming". Position implies priority, but ranking only
// distinguishes matching from non-matching results.
type PriorityList []string

// Matches reports whether rawURL belongs to any priority site. The URL host
// must equal the pattern host or be a subdomain of it, and when the pattern
// carries a path prefix the URL path must start with it.
func (p PriorityList) Matches(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, pattern := range p {
		patHost, patPath := splitPattern(pattern)
		if patHost == "" {
			continue
		}
		if host != patHost && !strings.HasSuffix(host, "."+patHost) {
			continue
		}
		if patPath != "" && !strings.HasPrefix(u.Path, patPath) {
			continue
		}
		return true
	}
	return false
}

// ScopedQuery builds a provider query restricted to the priority sites,
// e.g. "site:a.com OR site:b.com <query>". Returns query unchanged when the
// list is empty.
func (p PriorityList) ScopedQuery(query string) string {
	if len(p) == 0 {
		return query
	}
	parts := make([]string, 0, len(p))
	for _, pattern := range p {
		if s := strings.TrimSpace(pattern); s != "" {
			parts = append(parts, "site:"+s)
		}
	}
	if len(parts) == 0 {
		return query
	}
	return strings.Join(parts, " OR ") + " " + query
}

func splitPattern(pattern string) (host, path string) {
	s := strings.ToLower(strings.TrimSpace(pattern))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i], strings.TrimRight(s[i:], "/")
	}
	return s, ""
}

// Rank partitions results into priority-site matches and the rest, keeping
// matches first. The partition is stable: within each bucket the provider
// order is preserved. Pure function; the input slice is not modified.
func Rank(results []search.Result, priorities PriorityList) []search.Result {
	if len(priorities) == 0 {
		out := make([]search.Result, len(results))
		copy(out, results)
		return out
	}
	matched := make([]search.Result, 0, len(results))
	rest := make([]search.Result, 0, len(results))
	for _, r := range results {
		if priorities.Matches(r.URL) {
			matched = append(matched, r)
		} else {
			rest = append(rest, r)
		}
	}
	return append(matched, rest...)
}

// Merge flattens result groups in order, canonicalizes URLs, and drops
// duplicates, keeping the first occurrence. Results with unparseable or
// host-less URLs are dropped.
func Merge(groups ...[]search.Result) []search.Result {
	seen := map[string]struct{}{}
	out := make([]search.Result, 0, 32)
	for _, g := range groups {
		for _, r := range g {
			u, err := url.Parse(strings.TrimSpace(r.URL))
			if err != nil || u.Host == "" {
				continue
			}
			canonicalize(u)
			key := u.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			r.URL = key
			out = append(out, r)
		}
	}
	return out
}

// Cap returns at most n results. n <= 0 means no cap.
func Cap(results []search.Result, n int) []search.Result {
	if n <= 0 || len(results) <= n {
		return results
	}
	return results[:n]
}

func canonicalize(u *url.URL) {
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && strings.HasSuffix(u.Host, ":80")) ||
		(u.Scheme == "https" && strings.HasSuffix(u.Host, ":443")) {
		u.Host = u.Hostname()
	}
	q := u.Query()
	// Remove common tracking params
	for _, p := range []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "utm_id", "gclid", "fbclid"} {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
}
