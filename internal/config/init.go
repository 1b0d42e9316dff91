package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const settingsTemplate = `# devsearch settings
# maximum number of results requested and displayed per query
maxResults: 10
# how long to wait for the search provider before giving up
timeout: 10s
# search backend: duckduckgo (no setup needed) or searxng
provider: duckduckgo
# searxng needs a self-hosted or public instance with JSON output enabled
#searx:
#  url: "http://localhost:8888"
#  key: ""
# terminal colors: auto, dark or light
theme: auto
`

const sitesHeader = `# Priority sites, most important first. Results whose URL matches one of
# these hosts (optionally with a path prefix) are shown before everything
# else. Edit freely; order is priority.
sites:
`

// Init writes commented starter versions of both configuration files,
// creating parent directories as needed. It refuses to overwrite a file that
// already exists.
func Init(settingsPath, sitesPath string) error {
	sites := sitesHeader
	for _, s := range DefaultSites() {
		sites += fmt.Sprintf("  - %s\n", s)
	}
	for _, f := range []struct {
		path, content string
	}{
		{settingsPath, settingsTemplate},
		{sitesPath, sites},
	} {
		if _, err := os.Stat(f.path); err == nil {
			return &Error{Path: f.path, Err: os.ErrExist}
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return &Error{Path: f.path, Err: err}
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return &Error{Path: f.path, Err: err}
		}
	}
	return nil
}
