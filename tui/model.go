package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pimentafm/weatherapp/controller"
	"github.com/pimentafm/weatherapp/presenter"
	"github.com/pkg/errors"
)

type trigger int

const (
	triggerSearch trigger = iota
	triggerPrecise
)

// outcomeMsg is the continuation of a lookup started by a button.
type outcomeMsg struct {
	trigger trigger
	outcome *controller.Outcome
	err     error
}

// Model is the single weather screen: a search field, a search button and a
// precise-location button. A button is disabled while its lookup is in flight.
type Model struct {
	ctx    context.Context
	app    *controller.App
	keys   KeyMap
	styles *Style

	input   textinput.Model
	spinner spinner.Model

	launch    bool
	searching bool
	locating  bool
	view      *presenter.View
	toast     string
}

type Option func(*Model)

// WithLaunchLookup runs the precise-location lookup as soon as the screen starts.
func WithLaunchLookup() Option {
	return func(m *Model) {
		m.launch = true
		m.locating = true
	}
}

// WithToast starts the screen with a notice, e.g. a refused permission.
func WithToast(msg string) Option {
	return func(m *Model) {
		m.toast = msg
	}
}

func New(ctx context.Context, app *controller.App, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "City name"
	input.CharLimit = 85
	input.Width = 32
	input.Focus()

	m := Model{
		ctx:     ctx,
		app:     app,
		keys:    DefaultKeyMap,
		styles:  DefaultStyles(),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.launch {
		return tea.Batch(textinput.Blink, m.spinner.Tick, m.precise())
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Search):
			if m.searching {
				return m, nil
			}
			city := strings.TrimSpace(m.input.Value())
			m.toast = ""
			if city == "" {
				m.toast = controller.NoticeEnterCity
			}
			cmds := []tea.Cmd{m.search(city)}
			if !m.busy() {
				cmds = append(cmds, m.spinner.Tick)
			}
			m.searching = true
			return m, tea.Batch(cmds...)

		case key.Matches(msg, m.keys.Precise):
			if m.locating {
				return m, nil
			}
			m.toast = ""
			cmds := []tea.Cmd{m.precise()}
			if !m.busy() {
				cmds = append(cmds, m.spinner.Tick)
			}
			m.locating = true
			return m, tea.Batch(cmds...)
		}

	case outcomeMsg:
		return m.present(msg), nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) present(msg outcomeMsg) Model {
	if errors.Is(msg.err, controller.ErrControlDisabled) {
		return m
	}

	switch msg.trigger {
	case triggerSearch:
		m.searching = false
	case triggerPrecise:
		m.locating = false
	}

	if msg.err != nil {
		m.toast = controller.Describe(msg.err)
		return m
	}

	v := msg.outcome.View
	m.view = &v
	m.toast = msg.outcome.Notice
	if msg.trigger == triggerSearch {
		m.input.SetValue("")
	}
	return m
}

func (m Model) search(city string) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		out, err := app.Search(ctx, city)
		return outcomeMsg{trigger: triggerSearch, outcome: out, err: err}
	}
}

func (m Model) precise() tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		out, err := app.Precise(ctx)
		return outcomeMsg{trigger: triggerPrecise, outcome: out, err: err}
	}
}

func (m Model) busy() bool {
	return m.searching || m.locating
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Weather"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.button("Search", m.searching))
	b.WriteString(" ")
	b.WriteString(m.button("Use precise location", m.locating))
	b.WriteString("\n")

	if m.view != nil {
		b.WriteString(RenderCard(m.styles, *m.view))
		b.WriteString("\n")
	}
	if m.toast != "" {
		b.WriteString(m.styles.Toast.Render(m.toast))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(helpLine(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) button(label string, busy bool) string {
	if busy {
		return m.styles.DisabledButton.Render(m.spinner.View() + " " + label)
	}
	return m.styles.Button.Render(label)
}

func helpLine(k KeyMap) string {
	bindings := []key.Binding{k.Search, k.Precise, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m Model) Searching() bool { return m.searching }
func (m Model) Locating() bool  { return m.locating }
func (m Model) Toast() string   { return m.toast }

// Presented returns the last successfully presented report, or nil.
func (m Model) Presented() *presenter.View { return m.view }
