// Package bubbletea provides an interactive terminal preview for themes using
// the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nyoom-engineering/themec"
	themelipgloss "github.com/nyoom-engineering/themec/lipgloss"
	"github.com/nyoom-engineering/themec/variant"
)

// Compile-time interface verification.
var _ themec.Previewer = (*Previewer)(nil)

// families is the order the family key cycles through.
var families = []themec.Family{themec.FamilyGray, themec.FamilyCoolGray, themec.FamilyWarmGray}

const statusBarHeight = 1

// Highlighter returns a tokenizer that colors code with a theme document.
type Highlighter func(doc *themec.Table) (themec.Tokenizer, error)

// Model is the Bubble Tea model for previewing a theme.
type Model struct {
	doc        *themec.Table
	registry   *themec.Registry
	renderer   *lipgloss.Renderer
	keymap     KeyMap
	highlight  Highlighter
	language   string
	source     string
	family     int
	monochrome bool

	viewport viewport.Model
	ready    bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer sets the lipgloss renderer used for colors.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithRegistry sets the palette registry used for monochrome matches.
func WithRegistry(reg *themec.Registry) ModelOption {
	return func(m *Model) {
		m.registry = reg
	}
}

// WithFamily sets the initial gray family.
func WithFamily(f themec.Family) ModelOption {
	return func(m *Model) {
		for i, fam := range families {
			if fam == f {
				m.family = i
			}
		}
	}
}

// WithSample shows source highlighted with the previewed theme below the
// swatches.
func WithSample(language, source string, h Highlighter) ModelOption {
	return func(m *Model) {
		m.language = language
		m.source = source
		m.highlight = h
	}
}

// NewModel creates a new Model for doc.
func NewModel(doc *themec.Table, opts ...ModelOption) Model {
	m := Model{
		doc:    doc,
		keymap: DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.registry == nil {
		m.registry = themec.NewRegistry()
	}
	return m
}

// Family returns the selected gray family.
func (m Model) Family() themec.Family {
	return families[m.family]
}

// Monochrome reports whether the monochrome variant is shown.
func (m Model) Monochrome() bool {
	return m.monochrome
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.CycleFamily):
			m.family = (m.family + 1) % len(families)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.ToggleMonochrome):
			m.monochrome = !m.monochrome
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.GotoTop):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

// shown returns the document being previewed: the original, or its
// monochrome variant for the selected family.
func (m Model) shown() (*themec.Table, error) {
	if !m.monochrome {
		return m.doc, nil
	}
	doc := m.doc.Clone()
	v := themec.Variant{Monochrome: true, Family: m.Family().String()}
	if err := variant.Apply(doc, v, m.registry); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m Model) renderContent() string {
	doc, err := m.shown()
	if err != nil {
		return "error: " + err.Error()
	}

	var sb strings.Builder
	sb.WriteString(themelipgloss.Swatches(doc, m.registry.Ramp(m.Family()), false, m.renderer))
	if m.highlight == nil || m.source == "" {
		return sb.String()
	}

	tokenizer, err := m.highlight(doc)
	if err != nil {
		sb.WriteString("\nhighlight: " + err.Error() + "\n")
		return sb.String()
	}
	tokens := tokenizer.Tokenize(m.language, m.source)
	if tokens == nil {
		return sb.String()
	}
	var bg string
	if colors := doc.Table("colors"); colors != nil {
		bg, _ = colors.String("editor.background")
	}
	sb.WriteString("\n")
	sb.WriteString(themelipgloss.Code(themec.SplitLines(tokens), bg, m.renderer))
	return sb.String()
}

func (m Model) statusBarView() string {
	var style lipgloss.Style
	if m.renderer != nil {
		style = m.renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	dim := style.Faint(true)

	name, _ := m.doc.String("name")
	family := m.Family().Label()
	if family == "" {
		family = "Gray"
	}
	mode := "color"
	if m.monochrome {
		mode = "monochrome"
	}
	left := fmt.Sprintf(" %s  %s  %s  %s", name, family, mode, m.scrollPosition())
	return left + dim.Render("  f:family  m:monochrome  j/k:scroll  q:quit")
}

func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	return fmt.Sprintf("%2d%%", int(m.viewport.ScrollPercent()*100))
}

// Previewer implements themec.Previewer using a Bubble Tea TUI.
type Previewer struct {
	opts []ModelOption
}

// NewPreviewer creates a new Previewer whose models use opts.
func NewPreviewer(opts ...ModelOption) *Previewer {
	return &Previewer{opts: opts}
}

// Preview displays doc and blocks until the user exits.
func (p *Previewer) Preview(ctx context.Context, doc *themec.Table) error {
	prog := tea.NewProgram(NewModel(doc, p.opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := prog.Run()
	return err
}
