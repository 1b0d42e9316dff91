package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"devsearch/internal/browser"
	"devsearch/internal/query"
	"devsearch/internal/rank"
	"devsearch/internal/search"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Deps are the collaborators injected into the model.
type Deps struct {
	Dispatcher *query.Dispatcher
	Opener     browser.Opener
	Priorities rank.PriorityList
	Theme      string
}

// Model is the root Bubble Tea model.
type Model struct {
	deps Deps

	input textinput.Model
	list  resultList
	spin  spinner.Model

	focus       focusArea
	searching   bool
	status      string
	statusIsErr bool

	// Request lifecycle: gen increments on every submitted query. Stale
	// resultsMsg/searchErrMsg carrying an older gen are discarded, and the
	// previous request's context is cancelled (cancel-and-replace).
	gen    uint64
	cancel context.CancelFunc

	width, height int
	quitting      bool
}

// New builds the model. Run drives it; tests call Update directly.
func New(deps Deps) Model {
	applyTheme(deps.Theme)

	ti := textinput.New()
	ti.Placeholder = "Enter your search query..."
	ti.Prompt = ""
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		deps:   deps,
		input:  ti,
		list:   newResultList(),
		spin:   sp,
		status: "type a query and press enter",
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case resultsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.searching = false
		m.list.setResults(msg.results, m.deps.Priorities)
		if len(msg.results) == 0 {
			m.setStatus("no results found", false)
		} else {
			m.setStatus(fmt.Sprintf("%d results · enter opens, tab switches focus", len(msg.results)), false)
			m.focus = focusList
			m.input.Blur()
		}
		return m, nil

	case searchErrMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.searching = false
		m.setStatus(describeSearchErr(msg.err), true)
		return m, nil

	case openDoneMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("browser launch failed")
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus("opened "+msg.url, false)
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.focus == focusInput && m.list.len() > 0 {
			m.focus = focusList
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case "enter":
		if m.focus == focusList {
			return m.openSelected()
		}
		return m.submit()

	case "up":
		m.list.moveUp()
		return m, nil

	case "down":
		m.list.moveDown()
		return m, nil

	case "k":
		if m.focus == focusList {
			m.list.moveUp()
			return m, nil
		}

	case "j":
		if m.focus == focusList {
			m.list.moveDown()
			return m, nil
		}
	}
	return m.updateFocused(msg)
}

// submit starts a new search, cancelling any in-flight one.
func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.gen++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.searching = true
	m.setStatus("searching…", false)
	m.list.clear()
	return m, tea.Batch(
		searchCmd(ctx, m.deps.Dispatcher, q, m.gen),
		m.spin.Tick,
	)
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	url := m.list.selectedURL()
	if url == "" {
		return m, nil
	}
	return m, openCmd(m.deps.Opener, url)
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus != focusInput {
		return *m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return *m, cmd
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusIsErr = isErr
}

func (m *Model) layout() {
	m.input.Width = m.width - 6
	// input box (3 rows with border) + status bar + help line
	listHeight := m.height - 5
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.setSize(m.width, listHeight)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	box := styleInputBox
	if m.focus == focusInput {
		box = styleInputBoxFocused
	}
	input := box.Width(max(m.width-2, 20)).Render(m.input.View())

	var body string
	switch {
	case m.searching:
		body = "\n " + m.spin.View() + " searching…"
	case m.list.len() == 0:
		body = "\n " + styleHelp.Render("no results yet")
	default:
		body = m.list.view()
	}

	statusStyle := styleStatus
	if m.statusIsErr {
		statusStyle = styleStatusError
	}
	status := statusStyle.Render(ansiClip(m.status, m.width))
	help := styleHelp.Render("enter search · ↑/↓ select · tab focus · esc quit")

	return lipgloss.JoinVertical(lipgloss.Left, input, body, status, help)
}

func describeSearchErr(err error) string {
	switch {
	case search.IsTimeout(err):
		return "search timed out; the provider did not answer in time"
	case search.IsRateLimited(err):
		return "the search provider is rate limiting requests; try again in a moment"
	default:
		return "search failed: " + err.Error()
	}
}

func ansiClip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
