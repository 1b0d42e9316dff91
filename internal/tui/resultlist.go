package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"devsearch/internal/rank"
	"devsearch/internal/search"
)

// resultList renders ranked search results in a scrollable viewport and
// tracks the selected entry.
type resultList struct {
	vp       viewport.Model
	results  []search.Result
	priority []bool // parallel to results: matched a priority site
	itemLine []int  // first rendered line of each item, for scroll tracking
	selected int
	width    int
}

func newResultList() resultList {
	return resultList{vp: viewport.New(0, 0)}
}

func (l *resultList) setSize(width, height int) {
	l.width = width
	l.vp.Width = width
	l.vp.Height = height
	l.refresh()
}

func (l *resultList) setResults(results []search.Result, priorities rank.PriorityList) {
	l.results = results
	l.priority = make([]bool, len(results))
	for i, r := range results {
		l.priority[i] = priorities.Matches(r.URL)
	}
	l.selected = 0
	l.vp.GotoTop()
	l.refresh()
}

func (l *resultList) clear() {
	l.setResults(nil, nil)
}

func (l *resultList) len() int { return len(l.results) }

// selectedURL returns the URL under the cursor, or "" when the list is empty.
func (l *resultList) selectedURL() string {
	if l.selected < 0 || l.selected >= len(l.results) {
		return ""
	}
	return l.results[l.selected].URL
}

func (l *resultList) moveUp() {
	if l.selected > 0 {
		l.selected--
		l.refresh()
		l.scrollToSelected()
	}
}

func (l *resultList) moveDown() {
	if l.selected < len(l.results)-1 {
		l.selected++
		l.refresh()
		l.scrollToSelected()
	}
}

// scrollToSelected keeps the selected item inside the viewport.
func (l *resultList) scrollToSelected() {
	if l.selected >= len(l.itemLine) {
		return
	}
	top := l.itemLine[l.selected]
	bottom := top
	if l.selected+1 < len(l.itemLine) {
		bottom = l.itemLine[l.selected+1] - 1
	}
	if top < l.vp.YOffset {
		l.vp.SetYOffset(top)
	} else if bottom >= l.vp.YOffset+l.vp.Height {
		l.vp.SetYOffset(bottom - l.vp.Height + 1)
	}
}

func (l *resultList) refresh() {
	if l.width <= 0 {
		return
	}
	var sb strings.Builder
	l.itemLine = l.itemLine[:0]
	line := 0
	textWidth := l.width - 2 // cursor gutter
	if textWidth < 10 {
		textWidth = 10
	}
	for i, r := range l.results {
		item := l.renderItem(i, r, textWidth)
		l.itemLine = append(l.itemLine, line)
		line += lipgloss.Height(item)
		sb.WriteString(item)
		if i < len(l.results)-1 {
			sb.WriteByte('\n')
		}
	}
	l.vp.SetContent(sb.String())
}

func (l *resultList) renderItem(i int, r search.Result, width int) string {
	titleStyle := styleTitle
	gutter := "  "
	if i == l.selected {
		titleStyle = styleTitleSelected
		gutter = styleCursor.Render("> ")
	}
	title := r.Title
	if title == "" {
		title = r.URL
	}
	if l.priority[i] {
		title = stylePriority.Render("★ ") + titleStyle.Render(title)
	} else {
		title = titleStyle.Render(title)
	}
	lines := []string{
		gutter + ansi.Truncate(title, width, "…"),
		"  " + styleURL.Render(ansi.Truncate(r.URL, width, "…")),
	}
	if s := strings.TrimSpace(r.Snippet); s != "" {
		wrapped := styleSnippet.Width(width).Render(s)
		for _, ln := range strings.Split(wrapped, "\n") {
			lines = append(lines, "  "+ln)
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (l *resultList) view() string {
	return l.vp.View()
}
