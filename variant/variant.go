// Package variant derives OLED, monochrome, compatibility and print variants
// from a base theme document.
package variant

import (
	"strings"

	"github.com/nyoom-engineering/themec"
)

// Compatibility key tables. Keys listed in more than one table take the value
// of the last table applied.
var (
	panelKeys = []string{
		"titleBar.activeBackground",
		"editorGroupHeader.tabsBackground",
		"tab.inactiveBackground",
		"activityBar.background",
		"sideBar.background",
		"panel.background",
		"statusBar.background",
		"editorWidget.background",
	}
	gutterKeys = []string{
		"editorGutter.background",
	}
	contrastKeys = []string{
		"titleBar.border",
		"tab.border",
		"activityBar.border",
		"statusBar.border",
		"titleBar.activeBackground",
		"list.hoverBackground",
		"dropdown.background",
	}
	borderKeys = []string{
		"tab.border",
		"sideBar.border",
		"panel.border",
		"editorWidget.resizeBorder",
		"editorGroupHeader.border",
	}
)

// Monochrome foregrounds forced by font style.
const (
	italicForeground = "#f2f4f8"
	boldForeground   = "#ffffff"
)

// Compat holds the shades written by the compatibility variant.
type Compat struct {
	Panel    string
	Gutter   string
	Contrast string
	Border   string
}

// CompatShades returns the compatibility shades for standard or OLED
// backgrounds.
func CompatShades(oled bool) (Compat, error) {
	panelFrom, panelTo := "#161616", "#262626"
	gutter, contrast, base := "#131313", "#393939", "#262626"
	if oled {
		panelFrom, panelTo = "#000000", "#161616"
		gutter, contrast, base = "#030303", "#262626", "#161616"
	}
	panel, err := themec.MidpointHex(panelFrom, panelTo)
	if err != nil {
		return Compat{}, err
	}
	border, err := themec.MidpointHex(base, contrast)
	if err != nil {
		return Compat{}, err
	}
	return Compat{Panel: panel, Gutter: gutter, Contrast: contrast, Border: border}, nil
}

// Apply transforms doc in place. Steps run in a fixed order: OLED
// substitution, monochrome reduction, compatibility shades, naming, then
// print inversion.
func Apply(doc *themec.Table, v themec.Variant, reg *themec.Registry) error {
	if v.OLED {
		doc.WalkStrings(themec.ReplaceOLED)
	}

	if v.Monochrome {
		ramp := reg.Lookup(v.Family)
		doc.WalkStrings(func(s string) string {
			out, _ := themec.MonochromeHex(s, ramp, v.Print)
			return out
		})
		applyStyleOverrides(doc)
	}

	if v.Compat {
		if colors := doc.Table("colors"); colors != nil {
			shades, err := CompatShades(v.OLED)
			if err != nil {
				return err
			}
			setAll(colors, panelKeys, shades.Panel)
			setAll(colors, gutterKeys, shades.Gutter)
			setAll(colors, contrastKeys, shades.Contrast)
			setAll(colors, borderKeys, shades.Border)
		}
	}

	if !v.IsBase() {
		current, _ := doc.String("name")
		if name := v.Name(current); name != current {
			doc.Set("name", name)
		}
	}

	if v.Print {
		doc.WalkStrings(invertHex)
		doc.Set("type", "light")
	}
	return nil
}

func setAll(t *themec.Table, keys []string, value string) {
	for _, k := range keys {
		t.Set(k, value)
	}
}

// applyStyleOverrides forces italic tokens to the light gray and bold-only
// tokens to white so emphasis survives monochrome reduction.
func applyStyleOverrides(doc *themec.Table) {
	for _, item := range doc.Array("tokenColors") {
		entry, ok := item.(*themec.Table)
		if !ok {
			continue
		}
		settings := entry.Table("settings")
		if settings == nil {
			continue
		}
		style, ok := settings.String("fontStyle")
		if !ok {
			continue
		}
		switch {
		case strings.Contains(style, "italic") || strings.Contains(style, "Italic"):
			settings.Set("foreground", italicForeground)
		case strings.EqualFold(strings.TrimSpace(style), "bold"):
			settings.Set("foreground", boldForeground)
		}
	}
}

func invertHex(s string) string {
	c, ok := themec.ParseHex(s)
	if !ok {
		return s
	}
	return themec.FormatHex(themec.Invert(c.RGB), c.Alpha, c.HasAlpha)
}
