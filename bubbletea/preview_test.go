package bubbletea_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/bubbletea"
	"github.com/nyoom-engineering/themec/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trueColorRenderer creates a lipgloss renderer that outputs true colors
// without affecting global state.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func newTheme() *themec.Table {
	colors := themec.NewTable()
	colors.Set("editor.background", "#161616")
	colors.Set("editor.foreground", "#f2f4f8")
	colors.Set("editorCursor.foreground", "#08bdba")
	doc := themec.NewTable()
	doc.Set("name", "Oxocarbon")
	doc.Set("colors", colors)
	return doc
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m bubbletea.Model, msg tea.Msg) bubbletea.Model {
	t.Helper()

	next, _ := m.Update(msg)
	model, ok := next.(bubbletea.Model)
	require.True(t, ok)
	return model
}

func TestModel_Init(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(newTheme())

	assert.Nil(t, m.Init())
}

func TestModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(newTheme())

	assert.Contains(t, m.View(), "Loading")
}

func TestModel_CycleFamily(t *testing.T) {
	t.Parallel()

	t.Run("cycles through every family and wraps", func(t *testing.T) {
		t.Parallel()

		m := bubbletea.NewModel(newTheme())
		m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
		require.Equal(t, themec.FamilyGray, m.Family())

		m = update(t, m, keyRunes('f'))
		assert.Equal(t, themec.FamilyCoolGray, m.Family())
		m = update(t, m, keyRunes('f'))
		assert.Equal(t, themec.FamilyWarmGray, m.Family())
		m = update(t, m, keyRunes('f'))
		assert.Equal(t, themec.FamilyGray, m.Family())
	})

	t.Run("starts from the configured family", func(t *testing.T) {
		t.Parallel()

		m := bubbletea.NewModel(newTheme(), bubbletea.WithFamily(themec.FamilyWarmGray))

		assert.Equal(t, themec.FamilyWarmGray, m.Family())
	})
}

func TestModel_ToggleMonochrome(t *testing.T) {
	t.Parallel()

	doc := newTheme()
	m := bubbletea.NewModel(doc, bubbletea.WithRenderer(trueColorRenderer()))
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(t, m, keyRunes('m'))

	assert.True(t, m.Monochrome())
	assert.Contains(t, m.View(), "monochrome")
	assert.Contains(t, m.View(), "#a8a8a8")
	cursor, _ := doc.Table("colors").String("editorCursor.foreground")
	assert.Equal(t, "#08bdba", cursor, "the previewed document is not modified")

	m = update(t, m, keyRunes('m'))

	assert.False(t, m.Monochrome())
}

func TestModel_Sample(t *testing.T) {
	t.Parallel()

	t.Run("renders highlighted code below the swatches", func(t *testing.T) {
		t.Parallel()

		var gotLanguage string
		tokenizer := &mock.Tokenizer{
			TokenizeFn: func(language, source string) []themec.Token {
				gotLanguage = language
				return []themec.Token{{Text: source, Style: themec.Style{Foreground: "#ff7eb6"}}}
			},
		}
		h := func(*themec.Table) (themec.Tokenizer, error) { return tokenizer, nil }
		m := bubbletea.NewModel(newTheme(),
			bubbletea.WithRenderer(trueColorRenderer()),
			bubbletea.WithSample("go", "func main()", h),
		)

		m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

		assert.Equal(t, "go", gotLanguage)
		assert.Contains(t, m.View(), "func main()")
		assert.Contains(t, m.View(), "38;2;255;126;182")
	})

	t.Run("shows highlighter errors", func(t *testing.T) {
		t.Parallel()

		h := func(*themec.Table) (themec.Tokenizer, error) { return nil, errors.New("no style") }
		m := bubbletea.NewModel(newTheme(), bubbletea.WithSample("go", "x", h))

		m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

		assert.Contains(t, m.View(), "highlight: no style")
	})
}

func TestModel_Teatest(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(newTheme())
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("editorCursor.foreground"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyRunes('f'))
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Cool Gray"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyRunes('q'))
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_QuitOnCtrlC(t *testing.T) {
	t.Parallel()

	tm := teatest.NewTestModel(t, bubbletea.NewModel(newTheme()),
		teatest.WithInitialTermSize(80, 24),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}
