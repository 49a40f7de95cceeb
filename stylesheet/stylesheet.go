// Package stylesheet derives an adaptive UI stylesheet-variable document from
// a compiled editor theme.
package stylesheet

import (
	"fmt"
	"strconv"

	"github.com/nyoom-engineering/themec"
)

// Extends is the parent theme every generated stylesheet inherits from.
const Extends = "Adaptive.sublime-theme"

// Fallback chains. The first key present in the theme's colors wins.
var (
	accentKeys    = []string{"scmGraph.foreground1", "activityBar.activeBorder", "statusBarItem.warningForeground"}
	redishKeys    = []string{"charts.red", "scmGraph.foreground1", "problemsErrorIcon.foreground", "gitDecoration.deletedResourceForeground", "testing.iconFailed"}
	pinkishKeys   = []string{"charts.blue", "scmGraph.foreground2", "textLink.foreground", "editorSuggestWidget.focusHighlightForeground"}
	orangishKeys  = []string{"charts.orange", "scmGraph.foreground3", "list.warningForeground", "statusBarItem.warningForeground"}
	bluishKeys    = []string{"charts.yellow", "terminal.ansiBlue", "scmGraph.foreground4", "editorLink.activeForeground", "activityBar.activeBorder"}
	greenishKeys  = []string{"charts.green", "scmGraph.foreground5", "testing.iconPassed", "gitDecoration.addedResourceForeground"}
	cyanishKeys   = []string{"charts.foreground", "scmGraph.foreground2", "gitDecoration.modifiedResourceForeground", "terminal.ansiCyan", "editorMarkerNavigationInfo.background"}
	purplishKeys  = []string{"charts.purple", "textLink.activeForeground", "problemsInfoIcon.foreground"}
	yellowishKeys = []string{"charts.yellow", "terminal.ansiBrightYellow", "testing.iconSkipped"}

	tooltipBgKeys = []string{"editorHoverWidget.background", "tooltip.background", "editorWidget.background"}
	tooltipFgKeys = []string{"editorHoverWidget.foreground", "tooltip.foreground", "editor.foreground"}

	tabLabelMutedKeys = []string{"tab.inactiveForeground", "list.deemphasizedForeground", "disabledForeground"}
	tabLabelKeys      = []string{"tab.activeForeground", "list.activeSelectionForeground", "editor.foreground"}
	tabLabelFocusKeys = []string{"list.hoverForeground", "list.highlightForeground", "editor.foreground"}

	suggestBgKeys         = []string{"editorSuggestWidget.background", "editorWidget.background", "panel.background"}
	suggestSelectedBgKeys = []string{"editorSuggestWidget.selectedBackground", "list.activeSelectionBackground", "tab.activeBackground"}
	suggestFgKeys         = []string{"editorSuggestWidget.foreground", "editor.foreground"}
	suggestSelectedFgKeys = []string{"editorSuggestWidget.selectedForeground", "list.activeSelectionForeground", "editor.foreground"}
	suggestBorderKeys     = []string{"editorSuggestWidget.border", "editorHoverWidget.border", "focusBorder"}

	disabledKeys = []string{"disabledForeground", "list.inactiveSelectionForeground", "editorLineNumber.foreground"}
)

// Background chains differ between themes whose chrome matches the editor
// and compatibility themes whose chrome is shaded separately.
type backgroundChains struct {
	dark, mediumDark, medium, light []string
	dividers                        []string
}

var (
	standardChains = backgroundChains{
		dark:       []string{"activityBar.background", "sideBar.background", "panel.background", "editor.background"},
		mediumDark: []string{"editorGroupHeader.tabsBackground", "sideBar.background", "panel.background", "notebook.cellEditorBackground"},
		medium:     []string{"panel.background", "tab.inactiveBackground", "peekViewResult.background", "editorWidget.background"},
		light:      []string{"menu.background", "titleBar.activeBackground", "list.inactiveSelectionBackground", "tab.hoverBackground"},
		dividers:   []string{"menu.separatorBackground", "tree.indentGuidesStroke", "tree.inactiveIndentGuidesStroke", "editorGroup.border"},
	}
	compatChains = backgroundChains{
		dark:       []string{"editor.background", "activityBar.background"},
		mediumDark: []string{"notebook.cellEditorBackground", "editorGroupHeader.tabsBackground", "panel.background", "sideBar.background"},
		medium:     []string{"panel.background", "activityBar.background", "sideBar.background"},
		light:      []string{"activityBar.background", "panel.background", "titleBar.activeBackground"},
		dividers:   []string{"editorGroup.border", "menu.separatorBackground"},
	}
)

// palette resolves colors from a theme's colors table.
type palette struct {
	colors *themec.Table
}

// pick returns the first string value present under keys, or fallback.
func (p palette) pick(fallback string, keys ...string) string {
	for _, k := range keys {
		if s, ok := p.colors.String(k); ok {
			return s
		}
	}
	return fallback
}

func (p palette) required(key string) (string, error) {
	s, ok := p.colors.String(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", themec.ErrMissingColor, key)
	}
	return s, nil
}

// IsCompatibility reports whether any chrome background differs from the
// editor background.
func IsCompatibility(colors *themec.Table) bool {
	p := palette{colors: colors}
	bg, _ := colors.String("editor.background")
	return p.pick(bg, "activityBar.background") != bg ||
		p.pick(bg, "sideBar.background") != bg ||
		p.pick(bg, "panel.background") != bg
}

// ContrastRatio returns the minimum contrast used for VCS colors against a
// background of the given luminance.
func ContrastRatio(luminance float64) float64 {
	switch {
	case luminance < 0.02:
		return 3.0
	case luminance < 0.08:
		return 2.8
	case luminance > 0.8:
		return 2.2
	case luminance > 0.5:
		return 2.4
	default:
		return 2.5
	}
}

// SheetColor returns the channel midpoint of base and target, or base when
// either is not a hex color.
func SheetColor(base, target string) string {
	mid, err := themec.MidpointHex(base, target)
	if err != nil {
		return base
	}
	return mid
}

// Build derives the stylesheet document for theme. The theme must carry a
// colors table with editor.background and editor.foreground.
func Build(theme *themec.Table) (*themec.Table, error) {
	colors := theme.Table("colors")
	if colors == nil {
		return nil, fmt.Errorf("colors: %w", themec.ErrNotTable)
	}
	vars, err := Variables(colors)
	if err != nil {
		return nil, err
	}
	name, _ := theme.String("name")

	doc := themec.NewTable()
	doc.Set("extends", Extends)
	doc.Set("name", name)
	doc.Set("variables", vars)
	doc.Set("rules", []any{})
	return doc, nil
}

// Variables derives the variables table from a theme's colors.
func Variables(colors *themec.Table) (*themec.Table, error) {
	p := palette{colors: colors}
	background, err := p.required("editor.background")
	if err != nil {
		return nil, err
	}
	foreground, err := p.required("editor.foreground")
	if err != nil {
		return nil, err
	}
	accent := p.pick(foreground, accentKeys...)

	vars := themec.NewTable()
	vars.Set("--background", background)
	vars.Set("--foreground", foreground)
	vars.Set("--accent", accent)
	vars.Set("--redish", p.pick(accent, redishKeys...))
	vars.Set("--pinkish", p.pick(accent, pinkishKeys...))
	vars.Set("--orangish", p.pick(accent, orangishKeys...))
	vars.Set("--bluish", p.pick(accent, bluishKeys...))
	vars.Set("--greenish", p.pick(accent, greenishKeys...))
	vars.Set("--cyanish", p.pick(accent, cyanishKeys...))
	vars.Set("--purplish", p.pick(accent, purplishKeys...))
	vars.Set("--yellowish", p.pick(accent, yellowishKeys...))

	chains := standardChains
	if IsCompatibility(colors) {
		chains = compatChains
	}
	darkBg := p.pick(background, chains.dark...)
	mediumDarkBg := p.pick(darkBg, chains.mediumDark...)
	mediumBg := p.pick(mediumDarkBg, chains.medium...)
	lightBg := p.pick(mediumBg, chains.light...)
	vars.Set("dark_bg", darkBg)
	vars.Set("medium_dark_bg", mediumDarkBg)
	vars.Set("medium_bg", mediumBg)
	vars.Set("light_bg", lightBg)

	var lum float64
	if c, ok := themec.ParseHex(background); ok {
		lum = float64(c.RGB.Luminance())
	}
	light := lum > 0.5
	contrast := strconv.FormatFloat(ContrastRatio(lum), 'f', -1, 64)
	minContrast := func(v string) string {
		return "color(var(" + v + ") min-contrast(var(--background) " + contrast + "))"
	}
	vars.Set("vcs_modified", minContrast("--bluish"))
	vars.Set("vcs_missing", minContrast("--redish"))
	vars.Set("vcs_staged", minContrast("--bluish"))
	vars.Set("vcs_added", minContrast("--greenish"))
	vars.Set("vcs_deleted", minContrast("--redish"))
	vars.Set("vcs_unmerged", minContrast("--orangish"))

	vars.Set("adaptive_dividers", p.pick(foreground, chains.dividers...))

	vars.Set("icon_tint", "var(--foreground)")
	vars.Set("icon_light_tint", tint(choose(light, 0.18, 0.12)))

	vars.Set("tool_tip_bg", p.pick(lightBg, tooltipBgKeys...))
	vars.Set("tool_tip_fg", p.pick(foreground, tooltipFgKeys...))

	vars.Set("tabset_button_opacity", opacity(0.6, 4))
	vars.Set("tabset_new_tab_button_opacity", opacity(0.3, 4))
	vars.Set("tabset_button_hover_opacity", opacity(0.8, 4))

	vars.Set("tabset_dark_tint_mod", tint(choose(light, 0.060, 0.080)))
	vars.Set("tabset_dark_bg", "var(dark_bg)")
	vars.Set("tabset_medium_dark_tint_mod", tint(choose(light, 0.050, 0.060)))
	vars.Set("tabset_medium_dark_bg", mediumDarkBg)
	vars.Set("tabset_medium_tint_mod", tint(0.040))
	vars.Set("tabset_medium_bg", mediumBg)
	vars.Set("tabset_light_tint_mod", tint(choose(light, 0.020, 0.025)))
	vars.Set("tabset_light_bg", lightBg)

	for _, shade := range []string{"dark", "medium_dark", "medium", "light"} {
		vars.Set("file_tab_angled_unselected_"+shade+"_tint", "var(tabset_"+shade+"_tint_mod)")
	}
	for _, shade := range []string{"dark", "medium_dark", "medium", "light"} {
		vars.Set("file_tab_selected_"+shade+"_tint", "color(var(tabset_"+shade+"_tint_mod) a(- 70%))")
	}

	tabLabelMuted := p.pick(foreground, tabLabelMutedKeys...)
	tabLabel := p.pick(foreground, tabLabelKeys...)
	tabLabelFocus := p.pick(tabLabel, tabLabelFocusKeys...)
	const (
		shadowDark  = "color(var(--background) a(0.35))"
		shadowLight = "color(var(--foreground) a(0.25))"
	)
	vars.Set("file_tab_angled_unselected_label_color", tabLabelMuted)
	vars.Set("file_tab_angled_unselected_label_shadow", shadowDark)
	vars.Set("file_tab_angled_unselected_medium_label_color", tabLabel)
	vars.Set("file_tab_angled_unselected_medium_label_shadow", shadowDark)
	vars.Set("file_tab_angled_unselected_light_label_color", tabLabelFocus)
	vars.Set("file_tab_angled_unselected_light_label_shadow", shadowLight)
	vars.Set("file_tab_unselected_label_color", tabLabel)
	vars.Set("file_tab_unselected_light_label_color", tabLabelFocus)
	vars.Set("file_tab_selected_label_color", tabLabel)
	vars.Set("file_tab_selected_light_label_color", tabLabelFocus)

	vars.Set("file_tab_close_opacity", opacity(0.5, 4))
	vars.Set("file_tab_close_hover_opacity", opacity(0.9, 4))
	vars.Set("file_tab_close_selected_opacity", opacity(0.8, 4))
	vars.Set("file_tab_close_selected_hover_opacity", opacity(1, 4))

	vars.Set("sheet_dark_modifier", SheetColor(background, mediumDarkBg))
	vars.Set("sheet_medium_dark_modifier", SheetColor(mediumDarkBg, mediumBg))
	vars.Set("sheet_medium_modifier", SheetColor(mediumBg, lightBg))
	vars.Set("sheet_light_modifier", SheetColor(lightBg, foreground))

	vars.Set("text_widget_dark_modifier", "l(- 4%) s(* 40%)")
	vars.Set("text_widget_light_modifier", "l(- 4%) s(* 40%)")

	viewportAlpha := choose(light, 0.22, 0.18)
	vars.Set("viewport_always_visible_color", tint(viewportAlpha))
	vars.Set("viewport_hide_show_color", tint(min(viewportAlpha+0.06, 1)))

	suggestBg := p.pick(mediumBg, suggestBgKeys...)
	suggestSelectedBg := p.pick(mediumDarkBg, suggestSelectedBgKeys...)
	suggestFg := p.pick(foreground, suggestFgKeys...)
	suggestSelectedFg := p.pick(foreground, suggestSelectedFgKeys...)
	suggestBorder := p.pick(accent, suggestBorderKeys...)
	vars.Set("auto_complete_bg_dark_tint", suggestBg)
	vars.Set("auto_complete_bg_light_tint", suggestBg)
	vars.Set("auto_complete_selected_row_dark_tint", suggestSelectedBg)
	vars.Set("auto_complete_selected_row_light_tint", suggestSelectedBg)
	vars.Set("auto_complete_text_dark_tint", suggestFg)
	vars.Set("auto_complete_text_light_tint", suggestSelectedFg)
	vars.Set("auto_complete_detail_pane_dark_tint", suggestBorder)
	vars.Set("auto_complete_detail_pane_light_tint", suggestBorder)
	vars.Set("auto_complete_detail_panel_mono_dark_bg", suggestSelectedBg)
	vars.Set("auto_complete_detail_panel_mono_light_bg", suggestBg)

	vars.Set("kind_function_color", "var(--redish)")
	vars.Set("kind_keyword_color", "var(--pinkish)")
	vars.Set("kind_markup_color", "var(--orangish)")
	vars.Set("kind_namespace_color", "var(--bluish)")
	vars.Set("kind_navigation_color", "var(--yellowish)")
	vars.Set("kind_snippet_color", "var(--greenish)")
	vars.Set("kind_type_color", "var(--purplish)")
	vars.Set("kind_variable_color", "var(--cyanish)")
	vars.Set("kind_name_label_border_color", "color(var(--accent) a(0.8))")

	vars.Set("icon_opacity", opacity(0.7, 5))
	vars.Set("icon_hover_opacity", opacity(1, 5))

	disabled := p.pick(foreground, disabledKeys...)
	vars.Set("radio_back", "var(--background)")
	vars.Set("radio_border-unselected", disabled)
	vars.Set("radio_selected", "var(--bluish)")
	vars.Set("radio_border-selected", "var(--bluish)")
	vars.Set("checkbox_back", "var(--background)")
	vars.Set("checkbox_border-unselected", disabled)
	vars.Set("checkbox_selected", "var(--bluish)")
	vars.Set("checkbox_border-selected", "var(--bluish)")
	vars.Set("checkbox-disabled", disabled)

	return vars, nil
}

func choose(light bool, ifLight, ifDark float64) float64 {
	if light {
		return ifLight
	}
	return ifDark
}

// tint is the foreground at the given alpha.
func tint(alpha float64) string {
	return fmt.Sprintf("color(var(--foreground) a(%.3f))", alpha)
}

// opacity is an animated opacity value.
func opacity(target, speed float64) *themec.Table {
	t := themec.NewTable()
	t.Set("target", target)
	t.Set("speed", speed)
	t.Set("interpolation", "smoothstep")
	return t
}
