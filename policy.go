package themec

import "strings"

// Accent colors eligible for monochrome reduction.
var accentColors = map[uint32]struct{}{
	0x08bdba: {},
	0x33b1ff: {},
	0x3ddbd9: {},
	0x42be65: {},
	0x78a9ff: {},
	0x82cfff: {},
	0xa6c8ff: {},
	0xbe95ff: {},
	0xee5396: {},
	0xff7eb6: {},
}

// printAccent is only reduced in print mode.
const printAccent = 0x0f62fe

// IsMonochromeCandidate reports whether rgb is on the accent allow-list.
// Matching is exact; near misses are not candidates.
func IsMonochromeCandidate(rgb RGB, isPrint bool) bool {
	packed := rgb.Packed()
	if _, ok := accentColors[packed]; ok {
		return true
	}
	return isPrint && packed == printAccent
}

// Replacement is a literal substring substitution.
type Replacement struct {
	From string
	To   string
}

var oledReplacements = [...]Replacement{
	{"#161616", "#000000"},
	{"#1b1b1b", "#0b0b0b"},
	{"#1e1e1e", "#0b0b0b"},
	{"#212121", "#0f0f0f"},
	{"#262626", "#161616"},
	{"#393939", "#262626"},
	{"#525252", "#393939"},
}

// OLEDReplacements returns the OLED substitution table in application order.
func OLEDReplacements() []Replacement {
	return append([]Replacement(nil), oledReplacements[:]...)
}

// ReplaceOLED applies each OLED rule in order, replacing only the first
// occurrence of its From text. Rules see the output of earlier rules, so
// "#262626" becomes "#161616" and is not rewritten again by the first rule,
// which has already run.
func ReplaceOLED(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}
	for _, r := range oledReplacements {
		s = strings.Replace(s, r.From, r.To, 1)
	}
	return s
}

// MonochromeHex maps a hex color on the accent allow-list to the ramp entry
// with the closest luminance, keeping the original alpha. It reports false,
// and returns s unchanged, when s is not a valid hex color or not a candidate.
func MonochromeHex(s string, ramp *Ramp, isPrint bool) (string, bool) {
	c, ok := ParseHex(s)
	if !ok || !IsMonochromeCandidate(c.RGB, isPrint) {
		return s, false
	}
	match := ramp.Nearest(c.RGB.Luminance())
	return FormatHex(match, c.Alpha, c.HasAlpha), true
}
