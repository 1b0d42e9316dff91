// Package browser opens URLs in the OS default browser.
package browser

import (
	"fmt"
	"io"
	"net/url"

	"github.com/pkg/browser"
)

func init() {
	// The launched browser's chatter would corrupt the terminal UI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// LaunchError reports a failure to hand a URL to the default browser.
type LaunchError struct {
	URL string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("open %s: %v", e.URL, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Opener launches a URL. The interface exists so the presentation layer can
// be tested without spawning a real browser.
type Opener interface {
	Open(rawURL string) error
}

// SystemOpener launches URLs through the platform's default-browser facility
// (xdg-open and friends). Only absolute http(s) URLs are accepted.
type SystemOpener struct{}

func (SystemOpener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &LaunchError{URL: rawURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &LaunchError{URL: rawURL, Err: fmt.Errorf("refusing non-http scheme %q", u.Scheme)}
	}
	if err := browser.OpenURL(rawURL); err != nil {
		return &LaunchError{URL: rawURL, Err: err}
	}
	return nil
}
