package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultDuckDuckGoURL is the JavaScript-free HTML frontend. It serves plain
// markup that can be parsed without a browser engine.
const DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo implements Provider by scraping the DuckDuckGo HTML frontend.
// No API key is required, which makes it the default provider.
type DuckDuckGo struct {
	BaseURL    string // defaults to DefaultDuckDuckGoURL
	UserAgent  string
	HTTPClient *http.Client
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	base := d.BaseURL
	if base == "" {
		base = DefaultDuckDuckGoURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo base url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	req.Header.Set("Accept", "text/html")

	hc := d.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	// The HTML frontend answers 202 with a challenge page when it suspects
	// automated traffic; treat it the same as an explicit 429.
	if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("duckduckgo: %w", ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("duckduckgo status: %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo response: %w", err)
	}
	out := make([]Result, 0, limit)
	collectResults(doc, &out, limit, d.Name())
	return out, nil
}

// collectResults walks the parse tree looking for result bodies. Each organic
// result sits in a container whose class includes "result__body"; ads carry a
// "result--ad" marker on an ancestor and are skipped.
func collectResults(n *html.Node, out *[]Result, limit int, source string) {
	if len(*out) >= limit {
		return
	}
	if n.Type == html.ElementNode {
		if hasClass(n, "result--ad") {
			return
		}
		if hasClass(n, "result__body") {
			if r, ok := parseResultBody(n, source); ok {
				*out = append(*out, r)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectResults(c, out, limit, source)
	}
}

func parseResultBody(n *html.Node, source string) (Result, bool) {
	var r Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a") && r.URL == "":
				r.Title = strings.TrimSpace(textContent(n))
				r.URL = resolveRedirect(attr(n, "href"))
			case hasClass(n, "result__snippet") && r.Snippet == "":
				r.Snippet = strings.TrimSpace(textContent(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if r.Title == "" || r.URL == "" {
		return Result{}, false
	}
	r.Source = source
	return r, true
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<encoded> redirect links to
// the destination URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
