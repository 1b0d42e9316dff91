// Package tui implements the interactive terminal surface: a query input, a
// selectable result list and a status bar. One query is in flight at a time;
// submitting a new one cancels and replaces it.
package tui

import (
	"devsearch/internal/search"
)

// resultsMsg carries a finished search. gen identifies the request generation
// so completions of cancelled requests can be discarded.
type resultsMsg struct {
	results []search.Result
	gen     uint64
}

// searchErrMsg signals a failed search for generation gen.
type searchErrMsg struct {
	err error
	gen uint64
}

// openDoneMsg reports the outcome of handing a URL to the browser. A nil err
// means the launch request was accepted.
type openDoneMsg struct {
	url string
	err error
}
