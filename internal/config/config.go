// Package config loads and validates the two user-editable configuration
// files: general settings and the priority-site list. Both are YAML so users
// can annotate them with comments. The loaded values are immutable and passed
// explicitly; there is no process-wide configuration state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	yaml "gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "devsearch"

	// DefaultMaxResults matches what a single screen of results can show
	// without scrolling on a typical terminal.
	DefaultMaxResults = 10

	// DefaultTimeout bounds one query dispatch. Web search providers answer
	// in well under a second; ten seconds distinguishes "slow" from "gone".
	DefaultTimeout = 10 * time.Second

	// DefaultProvider requires no API key or self-hosted instance.
	DefaultProvider = "duckduckgo"

	DefaultTheme = "auto"

	// DefaultUserAgent identifies devsearch in provider requests.
	DefaultUserAgent = "devsearch/1.0"
)

// Known enum values.
var (
	providers = []string{"duckduckgo", "searxng"}
	themes    = []string{"auto", "dark", "light"}
)

// Error describes a problem with a configuration file: the path that was
// read and what was wrong with it.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Settings holds the general settings file content, merged over defaults.
type Settings struct {
	MaxResults int
	Timeout    time.Duration
	Provider   string
	Theme      string
	Verbose    bool
	Searx      SearxSettings
}

// SearxSettings configures the optional SearxNG provider.
type SearxSettings struct {
	URL       string
	Key       string
	UserAgent string
}

// Config is everything loaded at startup: general settings plus the ordered
// priority-site list.
type Config struct {
	Settings Settings
	Sites    []string
}

// Default returns the built-in settings used when no settings file exists.
func Default() Settings {
	return Settings{
		MaxResults: DefaultMaxResults,
		Timeout:    DefaultTimeout,
		Provider:   DefaultProvider,
		Theme:      DefaultTheme,
		Searx:      SearxSettings{UserAgent: DefaultUserAgent},
	}
}

// DefaultSites is the starter priority list written by Init. It mirrors the
// sites a programmer-focused search typically wants surfaced first.
func DefaultSites() []string {
	return []string{
		"stackoverflow.com",
		"geeksforgeeks.org",
		"reddit.com/r/programming",
		"reddit.com/r/learnprogramming",
		"reddit.com/r/AskProgramming",
		"tutorialspoint.com",
		"w3schools.com",
		"medium.com/topic/programming",
		"dev.to",
		"github.com",
		"devdocs.io",
		"youtube.com",
		"developer.mozilla.org",
	}
}

// DefaultSettingsPath returns the XDG path of the settings file,
// e.g. ~/.config/devsearch/config.yaml on Linux.
func DefaultSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultSitesPath returns the XDG path of the priority-site list,
// e.g. ~/.config/devsearch/sites.yaml on Linux.
func DefaultSitesPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "sites.yaml")
}

// DefaultLogPath returns the XDG path of the log file the TUI writes to,
// e.g. ~/.local/state/devsearch/devsearch.log on Linux.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// settingsFile is the on-disk schema. Pointer fields distinguish "absent"
// from zero so the file only overrides what it mentions.
type settingsFile struct {
	MaxResults *int    `yaml:"maxResults"`
	Timeout    *string `yaml:"timeout"`
	Provider   *string `yaml:"provider"`
	Theme      *string `yaml:"theme"`
	Verbose    *bool   `yaml:"verbose"`
	Searx      struct {
		URL string `yaml:"url"`
		Key string `yaml:"key"`
		UA  string `yaml:"ua"`
	} `yaml:"searx"`
}

// LoadSettings reads the settings file at path and merges it over Default().
// A missing file is reported as a *Error wrapping fs.ErrNotExist; the caller
// decides whether that means "use defaults" or "abort".
func LoadSettings(path string) (Settings, error) {
	s := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return s, &Error{Path: path, Err: err}
	}
	var sf settingsFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return s, &Error{Path: path, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	if sf.MaxResults != nil {
		s.MaxResults = *sf.MaxResults
	}
	if sf.Timeout != nil {
		d, err := time.ParseDuration(*sf.Timeout)
		if err != nil {
			return s, &Error{Path: path, Err: fmt.Errorf("timeout: %w", err)}
		}
		s.Timeout = d
	}
	if sf.Provider != nil {
		s.Provider = *sf.Provider
	}
	if sf.Theme != nil {
		s.Theme = *sf.Theme
	}
	if sf.Verbose != nil {
		s.Verbose = *sf.Verbose
	}
	if sf.Searx.URL != "" {
		s.Searx.URL = sf.Searx.URL
	}
	if sf.Searx.Key != "" {
		s.Searx.Key = sf.Searx.Key
	}
	if sf.Searx.UA != "" {
		s.Searx.UserAgent = sf.Searx.UA
	}
	if err := s.Validate(); err != nil {
		return s, &Error{Path: path, Err: err}
	}
	return s, nil
}

// sitesFile is the on-disk schema of the priority list.
type sitesFile struct {
	Sites []string `yaml:"sites"`
}

// LoadSites reads the ordered priority-site list at path. A missing file is
// reported as a *Error wrapping fs.ErrNotExist so the caller can treat it as
// an empty list. Blank entries are dropped; order is preserved.
func LoadSites(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	var sf sitesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	out := make([]string, 0, len(sf.Sites))
	for _, s := range sf.Sites {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// Validate checks the settings for invalid values, returning the first error
// found. Fixing one error often makes later ones irrelevant.
func (s Settings) Validate() error {
	if s.MaxResults <= 0 {
		return fmt.Errorf("maxResults must be positive, got %d", s.MaxResults)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if !contains(providers, s.Provider) {
		return fmt.Errorf("unknown provider %q (want one of %v)", s.Provider, providers)
	}
	if s.Provider == "searxng" && strings.TrimSpace(s.Searx.URL) == "" {
		return errors.New("provider searxng requires searx.url")
	}
	if !contains(themes, s.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %v)", s.Theme, themes)
	}
	return nil
}

// IsNotExist reports whether err means a configuration file was missing, as
// opposed to present but unreadable or invalid.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
