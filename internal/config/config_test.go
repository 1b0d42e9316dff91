package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings_MergesOverDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
# tuned down for a small terminal
maxResults: 5
timeout: 3s
provider: searxng
searx:
  url: "http://localhost:8888"
`)
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got.MaxResults != 5 {
		t.Fatalf("maxResults = %d, want 5", got.MaxResults)
	}
	if got.Timeout != 3*time.Second {
		t.Fatalf("timeout = %s, want 3s", got.Timeout)
	}
	if got.Provider != "searxng" || got.Searx.URL != "http://localhost:8888" {
		t.Fatalf("provider not applied: %+v", got)
	}
	// untouched fields keep defaults
	if got.Theme != DefaultTheme {
		t.Fatalf("theme = %q, want default", got.Theme)
	}
	if got.Searx.UserAgent != DefaultUserAgent {
		t.Fatalf("ua = %q, want default", got.Searx.UserAgent)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if !IsNotExist(err) {
		t.Fatalf("expected not-exist classification, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error naming the file, got %T", err)
	}
	// defaults are still returned so the caller can fall back
	if got.MaxResults != DefaultMaxResults {
		t.Fatalf("expected defaults alongside the error")
	}
}

func TestLoadSettings_MalformedYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "maxResults: [oops\n")
	_, err := LoadSettings(path)
	if err == nil || IsNotExist(err) {
		t.Fatalf("expected parse error, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Path != path {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestLoadSettings_InvalidValues(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"zero maxResults", "maxResults: 0\n"},
		{"negative maxResults", "maxResults: -3\n"},
		{"bad duration", "timeout: soon\n"},
		{"unknown provider", "provider: bing\n"},
		{"searxng without url", "provider: searxng\n"},
		{"unknown theme", "theme: solarized\n"},
		{"wrong type", "maxResults: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			if _, err := LoadSettings(path); err == nil {
				t.Fatalf("expected error for %q", tt.content)
			}
		})
	}
}

func TestLoadSites_OrderAndComments(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sites.yaml", `
# most important first
sites:
  - stackoverflow.com
  - "reddit.com/r/programming"  # path prefixes are fine
  - "  dev.to  "
  - ""
`)
	got, err := LoadSites(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	want := []string{"stackoverflow.com", "reddit.com/r/programming", "dev.to"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLoadSites_MissingFile(t *testing.T) {
	_, err := LoadSites(filepath.Join(t.TempDir(), "nope.yaml"))
	if !IsNotExist(err) {
		t.Fatalf("expected not-exist classification, got %v", err)
	}
}

func TestInit_WritesLoadableFiles(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "sub", "config.yaml")
	sites := filepath.Join(dir, "sub", "sites.yaml")
	if err := Init(settings, sites); err != nil {
		t.Fatalf("init error: %v", err)
	}
	s, err := LoadSettings(settings)
	if err != nil {
		t.Fatalf("starter settings do not load: %v", err)
	}
	if s.MaxResults != DefaultMaxResults || s.Provider != DefaultProvider {
		t.Fatalf("starter settings differ from defaults: %+v", s)
	}
	list, err := LoadSites(sites)
	if err != nil {
		t.Fatalf("starter sites do not load: %v", err)
	}
	if !reflect.DeepEqual(list, DefaultSites()) {
		t.Fatalf("starter sites differ from defaults: %v", list)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "config.yaml", "maxResults: 3\n")
	sites := filepath.Join(dir, "sites.yaml")
	if err := Init(settings, sites); !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	b, _ := os.ReadFile(settings)
	if string(b) != "maxResults: 3\n" {
		t.Fatalf("existing file was modified")
	}
}
