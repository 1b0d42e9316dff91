package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"devsearch/internal/browser"
	"devsearch/internal/query"
)

// searchCmd runs the dispatcher in a background goroutine. The UI stays
// responsive while the provider call is in flight; ctx lets a newer query
// cancel this one.
func searchCmd(ctx context.Context, d *query.Dispatcher, q string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		results, err := d.Search(ctx, q)
		if err != nil {
			return searchErrMsg{err: err, gen: gen}
		}
		return resultsMsg{results: results, gen: gen}
	}
}

// openCmd asks the OS to open url in the default browser.
func openCmd(op browser.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		return openDoneMsg{url: url, err: op.Open(url)}
	}
}
