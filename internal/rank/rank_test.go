package rank

import (
	"reflect"
	"testing"

	"devsearch/internal/search"
)

func results(urls ...string) []search.Result {
	out := make([]search.Result, 0, len(urls))
	for _, u := range urls {
		out = append(out, search.Result{Title: u, URL: u})
	}
	return out
}

func urls(rs []search.Result) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.URL)
	}
	return out
}

func TestRank_PriorityHostsSurfaceFirst(t *testing.T) {
	in := results(
		"https://github.com/golang/go",
		"https://stackoverflow.com/questions/1",
		"https://reddit.com/r/golang/post",
	)
	got := Rank(in, PriorityList{"stackoverflow.com"})
	want := []string{
		"https://stackoverflow.com/questions/1",
		"https://github.com/golang/go",
		"https://reddit.com/r/golang/post",
	}
	if !reflect.DeepEqual(urls(got), want) {
		t.Fatalf("unexpected order: %v", urls(got))
	}
}

func TestRank_IsPermutation(t *testing.T) {
	in := results(
		"https://a.com/1",
		"https://b.com/1",
		"https://a.com/2",
		"https://c.com/1",
	)
	got := Rank(in, PriorityList{"a.com", "c.com"})
	if len(got) != len(in) {
		t.Fatalf("length changed: %d != %d", len(got), len(in))
	}
	count := map[string]int{}
	for _, r := range in {
		count[r.URL]++
	}
	for _, r := range got {
		count[r.URL]--
	}
	for u, c := range count {
		if c != 0 {
			t.Fatalf("not a permutation: %q off by %d", u, c)
		}
	}
}

func TestRank_EmptyPrioritiesPreservesOrder(t *testing.T) {
	in := results("https://b.com/1", "https://a.com/1", "https://c.com/1")
	got := Rank(in, nil)
	if !reflect.DeepEqual(urls(got), urls(in)) {
		t.Fatalf("order changed with no priorities: %v", urls(got))
	}
}

func TestRank_EmptyInput(t *testing.T) {
	if got := Rank(nil, PriorityList{"a.com"}); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestRank_StableWithinBuckets(t *testing.T) {
	in := results(
		"https://x.com/1",
		"https://prio.com/1",
		"https://y.com/1",
		"https://prio.com/2",
		"https://x.com/2",
	)
	got := Rank(in, PriorityList{"prio.com"})
	want := []string{
		"https://prio.com/1",
		"https://prio.com/2",
		"https://x.com/1",
		"https://y.com/1",
		"https://x.com/2",
	}
	if !reflect.DeepEqual(urls(got), want) {
		t.Fatalf("buckets not stable: %v", urls(got))
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	in := results("https://b.com/1", "https://prio.com/1")
	before := urls(in)
	_ = Rank(in, PriorityList{"prio.com"})
	if !reflect.DeepEqual(urls(in), before) {
		t.Fatalf("input modified: %v", urls(in))
	}
}

func TestPriorityList_Matches(t *testing.T) {
	tests := []struct {
		name     string
		patterns PriorityList
		url      string
		want     bool
	}{
		{"exact host", PriorityList{"stackoverflow.com"}, "https://stackoverflow.com/q/1", true},
		{"subdomain", PriorityList{"mozilla.org"}, "https://developer.mozilla.org/docs", true},
		{"different host", PriorityList{"stackoverflow.com"}, "https://github.com/x", false},
		{"suffix is not subdomain", PriorityList{"reddit.com"}, "https://notreddit.com/x", false},
		{"path prefix match", PriorityList{"reddit.com/r/programming"}, "https://reddit.com/r/programming/post", true},
		{"path prefix miss", PriorityList{"reddit.com/r/programming"}, "https://reddit.com/r/cooking/post", false},
		{"www pattern normalized", PriorityList{"www.w3schools.com"}, "https://w3schools.com/sql", true},
		{"case insensitive", PriorityList{"GitHub.com"}, "https://GITHUB.com/x", true},
		{"unparseable url", PriorityList{"a.com"}, "://bogus", false},
		{"empty list", nil, "https://a.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patterns.Matches(tt.url); got != tt.want {
				t.Fatalf("Matches(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestPriorityList_ScopedQuery(t *testing.T) {
	p := PriorityList{"stackoverflow.com", "dev.to"}
	got := p.ScopedQuery("goroutine leak")
	want := "site:stackoverflow.com OR site:dev.to goroutine leak"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := (PriorityList{}).ScopedQuery("q"); got != "q" {
		t.Fatalf("empty list should leave query unchanged, got %q", got)
	}
}

func TestMerge_DedupsAcrossGroups(t *testing.T) {
	scoped := results("https://stackoverflow.com/q/1", "https://dev.to/a")
	general := results("https://stackoverflow.com/q/1", "https://github.com/x")
	got := Merge(scoped, general)
	want := []string{
		"https://stackoverflow.com/q/1",
		"https://dev.to/a",
		"https://github.com/x",
	}
	if !reflect.DeepEqual(urls(got), want) {
		t.Fatalf("unexpected merge: %v", urls(got))
	}
}

func TestMerge_CanonicalizesURLs(t *testing.T) {
	in := results(
		"https://Example.com:443/page?utm_source=x#frag",
		"https://example.com/page",
	)
	got := Merge(in)
	if len(got) != 1 {
		t.Fatalf("expected canonical duplicates to collapse, got %v", urls(got))
	}
	if got[0].URL != "https://example.com/page" {
		t.Fatalf("unexpected canonical url: %q", got[0].URL)
	}
}

func TestMerge_DropsInvalidURLs(t *testing.T) {
	in := []search.Result{
		{Title: "no url"},
		{Title: "ok", URL: "https://a.com"},
	}
	if got := Merge(in); len(got) != 1 || got[0].Title != "ok" {
		t.Fatalf("expected invalid urls dropped, got %v", got)
	}
}

func TestCap(t *testing.T) {
	in := results("https://a.com/1", "https://a.com/2", "https://a.com/3")
	if got := Cap(in, 2); len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got := Cap(in, 0); len(got) != 3 {
		t.Fatalf("zero cap should disable, got %d", len(got))
	}
	if got := Cap(in, 5); len(got) != 3 {
		t.Fatalf("cap above length should be a no-op, got %d", len(got))
	}
}
