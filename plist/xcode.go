package plist

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nyoom-engineering/themec"
)

// XcodeTheme is an Xcode .xccolortheme document.
type XcodeTheme struct {
	Version              int               `plist:"DVTFontAndColorVersion"`
	Background           string            `plist:"DVTSourceTextBackground"`
	SelectionColor       string            `plist:"DVTSourceTextSelectionColor"`
	CurrentLineHighlight string            `plist:"DVTSourceTextCurrentLineHighlightColor"`
	InsertionPointColor  string            `plist:"DVTSourceTextInsertionPointColor"`
	SyntaxColors         map[string]string `plist:"DVTSourceTextSyntaxColors"`
	SyntaxFonts          map[string]string `plist:"DVTSourceTextSyntaxFonts"`
	Name                 string            `plist:"XCThemeName"`
}

// PlainKey is the Xcode syntax key for unscoped text.
const PlainKey = "xcode.syntax.plain"

type syntaxMapping struct {
	key    string
	scopes []string
}

// Xcode syntax keys and the TextMate scope prefixes that feed them, in
// priority order.
var syntaxMappings = []syntaxMapping{
	{"xcode.syntax.comment.doc.keyword", []string{"comment.doc.keyword"}},
	{"xcode.syntax.comment.doc", []string{"comment.doc"}},
	{"xcode.syntax.comment", []string{"comment"}},
	{"xcode.syntax.url", []string{"markup.underline.link"}},
	{"xcode.syntax.preprocessor", []string{"preproc", "keyword.control.directive", "punctuation.definition.directive"}},
	{"xcode.syntax.string", []string{"string.quoted", "string"}},
	{"xcode.syntax.character", []string{"constant.character", "string.character", "character"}},
	{"xcode.syntax.keyword", []string{"keyword", "storage.modifier", "keyword.operator"}},
	{"xcode.syntax.number", []string{"constant.numeric", "number"}},
	{"xcode.syntax.identifier.variable", []string{"variable.parameter", "variable"}},
	{"xcode.syntax.identifier.function", []string{"entity.name.function", "support.function", "storage.type.function", "function"}},
	{"xcode.syntax.identifier.type", []string{"entity.name.type", "support.type", "entity.name.namespace", "storage.type", "type"}},
	{"xcode.syntax.identifier.class", []string{"entity.name.class", "support.class", "entity.name.struct", "entity.name.enum", "class"}},
	{"xcode.syntax.identifier.constant", []string{"constant.language", "constant"}},
	{"xcode.syntax.identifier.macro", []string{"entity.name.macro"}},
	{"xcode.syntax.attribute", []string{"storage.type", "entity.other.attribute-name", "attribute"}},
	{"xcode.syntax.declaration.other", []string{"entity.name.function", "support.function", "storage.type.function", "function"}},
}

// fonts is indexed by [comment][bold][italic].
var fonts = [2][2][2]string{
	{
		{"SFMono-Regular - 14.0", "SFMono-RegularItalic - 14.0"},
		{"SFMono-Bold - 14.0", "SFMono-BoldItalic - 14.0"},
	},
	{
		{"SFProText-Regular - 14.0", "SFProText-Italic - 14.0"},
		{"SFProText-Bold - 14.0", "SFProText-BoldItalic - 14.0"},
	},
}

// Font returns the Xcode font name for a syntax key and style.
func Font(key string, bold, italic bool) string {
	return fonts[b2i(strings.Contains(key, "comment"))][b2i(bold)][b2i(italic)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

type token struct {
	themec.TokenRule
	color string // empty when the foreground is absent or invalid
}

// FormatRGBA renders a hex color as Xcode "r g b a" components, rounded to
// six decimal places. Missing alpha is opaque.
func FormatRGBA(hex string) (string, bool) {
	c, ok := themec.ParseHex(hex)
	if !ok {
		return "", false
	}
	alpha := uint8(0xff)
	if c.HasAlpha {
		alpha = c.Alpha
	}
	parts := [4]string{}
	for i, v := range [4]uint8{c.RGB[0], c.RGB[1], c.RGB[2], alpha} {
		parts[i] = formatComponent(v)
	}
	return strings.Join(parts[:], " "), true
}

const inv255 = float32(1.0 / 255.0)

func formatComponent(v uint8) string {
	x := float32(v) * inv255
	q := float32(math.Round(float64(x*1e6))) / 1e6
	return strconv.FormatFloat(float64(q), 'f', -1, 32)
}

// NewXcodeTheme converts a theme document. The editor background,
// foreground, cursor, selection and selection highlight colors are required.
func NewXcodeTheme(doc *themec.Table) (*XcodeTheme, error) {
	name, ok := doc.String("name")
	if !ok {
		return nil, fmt.Errorf("%w: name", themec.ErrMissingField)
	}
	colors := doc.Table("colors")
	if colors == nil {
		return nil, fmt.Errorf("colors: %w", themec.ErrNotTable)
	}
	if _, ok := doc.Get("tokenColors"); !ok {
		return nil, fmt.Errorf("%w: tokenColors", themec.ErrMissingField)
	}
	var tokens []token
	for _, r := range themec.TokenRules(doc) {
		t := token{TokenRule: r}
		t.color, _ = FormatRGBA(r.Foreground)
		tokens = append(tokens, t)
	}

	required := func(key string) (string, error) {
		s, _ := colors.String(key)
		rgba, ok := FormatRGBA(s)
		if !ok {
			return "", fmt.Errorf("%w: %s", themec.ErrMissingColor, key)
		}
		return rgba, nil
	}

	syntaxColors := make(map[string]string)
	for _, m := range syntaxMappings {
		if c, ok := mappedColor(tokens, m.scopes); ok {
			syntaxColors[m.key] = c
		}
	}
	plain, err := required("editor.foreground")
	if err != nil {
		return nil, err
	}
	syntaxColors[PlainKey] = plain

	syntaxFonts := make(map[string]string)
	for _, m := range syntaxMappings {
		bold, italic := mappedStyle(tokens, m.scopes)
		syntaxFonts[m.key] = Font(m.key, bold, italic)
	}
	if _, ok := syntaxFonts[PlainKey]; !ok {
		syntaxFonts[PlainKey] = fonts[0][0][0]
	}

	theme := &XcodeTheme{
		Version:      1,
		SyntaxColors: syntaxColors,
		SyntaxFonts:  syntaxFonts,
		Name:         name,
	}
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&theme.Background, "editor.background"},
		{&theme.SelectionColor, "editor.selectionBackground"},
		{&theme.CurrentLineHighlight, "editor.selectionHighlightBackground"},
		{&theme.InsertionPointColor, "editorCursor.foreground"},
	} {
		if *f.dst, err = required(f.key); err != nil {
			return nil, err
		}
	}
	return theme, nil
}

// mappedColor takes, for each pattern in turn, the first token matching it.
// A matching token without a color moves on to the next pattern.
func mappedColor(tokens []token, patterns []string) (string, bool) {
	for _, p := range patterns {
		for _, t := range tokens {
			if !t.Matches(p) {
				continue
			}
			if t.color != "" {
				return t.color, true
			}
			break
		}
	}
	return "", false
}

// mappedStyle ORs the styles of every token matching any pattern.
func mappedStyle(tokens []token, patterns []string) (bold, italic bool) {
	for _, p := range patterns {
		for _, t := range tokens {
			if t.HasStyle && t.Matches(p) {
				bold = bold || t.Bold()
				italic = italic || t.Italic()
			}
		}
	}
	return bold, italic
}

// XcodeEncoder writes Xcode color theme property lists.
type XcodeEncoder struct{}

// NewXcodeEncoder creates a new XcodeEncoder.
func NewXcodeEncoder() *XcodeEncoder {
	return &XcodeEncoder{}
}

// Encode writes doc as an Xcode color theme.
func (e *XcodeEncoder) Encode(w io.Writer, doc *themec.Table) error {
	theme, err := NewXcodeTheme(doc)
	if err != nil {
		return err
	}
	return writeXML(w, theme)
}
