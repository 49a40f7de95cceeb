// Package lipgloss renders theme colors, palette ramps and highlighted code
// for the terminal.
package lipgloss

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nyoom-engineering/themec"
)

// swatchWidth is the width of a color block in cells.
const swatchWidth = 4

// newStyle returns a style bound to r, or the default renderer if r is nil.
func newStyle(r *lipgloss.Renderer) lipgloss.Style {
	if r != nil {
		return r.NewStyle()
	}
	return lipgloss.NewStyle()
}

// TokenStyle converts a token style to a lipgloss style. Colors are rendered
// without alpha.
func TokenStyle(s themec.Style, r *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(r)
	if c, ok := themec.ParseHex(s.Foreground); ok {
		style = style.Foreground(lipgloss.Color(c.RGB.Hex()))
	}
	if c, ok := themec.ParseHex(s.Background); ok {
		style = style.Background(lipgloss.Color(c.RGB.Hex()))
	}
	return style.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
}

func block(rgb themec.RGB, r *lipgloss.Renderer) string {
	return newStyle(r).
		Background(lipgloss.Color(rgb.Hex())).
		Render(strings.Repeat(" ", swatchWidth))
}

// Swatches renders one row per color in the theme's colors table: a block,
// the key, the value and, for monochrome candidates, the ramp color it maps
// to. Entries that are not hex colors are skipped.
func Swatches(doc *themec.Table, ramp *themec.Ramp, isPrint bool, r *lipgloss.Renderer) string {
	colors := doc.Table("colors")
	if colors == nil {
		return ""
	}

	width := 0
	for _, k := range colors.Keys() {
		width = max(width, len(k))
	}
	muted := newStyle(r).Faint(true)

	var sb strings.Builder
	for _, k := range colors.Keys() {
		v, _ := colors.String(k)
		c, ok := themec.ParseHex(v)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s %-*s %-9s", block(c.RGB, r), width, k, v)
		if ramp != nil {
			if mono, ok := themec.MonochromeHex(v, ramp, isPrint); ok {
				m, _ := themec.ParseHex(mono)
				sb.WriteString(muted.Render(" -> "))
				sb.WriteString(block(m.RGB, r))
				sb.WriteString(" " + mono)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Ramp renders a palette ramp darkest first with each color's luminance.
func Ramp(ramp *themec.Ramp, r *lipgloss.Renderer) string {
	lums := ramp.Luminances()
	var sb strings.Builder
	for i, c := range ramp.Colors() {
		fmt.Fprintf(&sb, "%s %s %.4f\n", block(c, r), c.Hex(), lums[i])
	}
	return sb.String()
}

// tabWidth is the tab stop interval used when rendering code.
const tabWidth = 4

// Code renders highlighted lines over the given background color. Tabs are
// expanded to the next tab stop.
func Code(lines [][]themec.Token, background string, r *lipgloss.Renderer) string {
	bg, hasBG := themec.ParseHex(background)
	var sb strings.Builder
	for _, line := range lines {
		col := 0
		for _, tok := range line {
			s := tok.Style
			if s.Background == "" && hasBG {
				s.Background = bg.RGB.Hex()
			}
			var text string
			text, col = expandTabs(tok.Text, col)
			sb.WriteString(TokenStyle(s, r).Render(text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// expandTabs replaces tabs with spaces up to the next tab stop, given the
// column s starts at. It returns the column after s.
func expandTabs(s string, col int) (string, int) {
	if !strings.Contains(s, "\t") {
		return s, col + lipgloss.Width(s)
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			next := (col/tabWidth + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		sb.WriteRune(r)
		col += lipgloss.Width(string(r))
	}
	return sb.String(), col
}
