package chroma

import (
	"fmt"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/nyoom-engineering/themec"
)

type scopeMapping struct {
	token  chromalib.TokenType
	scopes []string
}

// Chroma token types and the TextMate scope prefixes that feed them, in
// priority order. Types without an entry inherit from their parent category.
var scopeMappings = []scopeMapping{
	{chromalib.CommentSpecial, []string{"comment.block.documentation", "comment.doc"}},
	{chromalib.CommentPreproc, []string{"meta.preprocessor", "keyword.control.directive"}},
	{chromalib.Comment, []string{"comment"}},
	{chromalib.LiteralStringRegex, []string{"string.regexp"}},
	{chromalib.LiteralStringEscape, []string{"constant.character.escape"}},
	{chromalib.LiteralStringInterpol, []string{"meta.embedded", "punctuation.section.embedded"}},
	{chromalib.LiteralString, []string{"string"}},
	{chromalib.LiteralNumber, []string{"constant.numeric"}},
	{chromalib.KeywordConstant, []string{"constant.language"}},
	{chromalib.NameConstant, []string{"variable.other.constant", "constant"}},
	{chromalib.Operator, []string{"keyword.operator"}},
	{chromalib.KeywordType, []string{"storage.type", "support.type"}},
	{chromalib.KeywordDeclaration, []string{"storage.modifier", "storage"}},
	{chromalib.Keyword, []string{"keyword"}},
	{chromalib.NameBuiltin, []string{"support.function"}},
	{chromalib.NameFunction, []string{"entity.name.function", "meta.function-call"}},
	{chromalib.NameClass, []string{"entity.name.class", "entity.name.type"}},
	{chromalib.NameDecorator, []string{"meta.decorator", "entity.name.function.decorator"}},
	{chromalib.NameTag, []string{"entity.name.tag"}},
	{chromalib.NameAttribute, []string{"entity.other.attribute-name"}},
	{chromalib.NameBuiltinPseudo, []string{"variable.language"}},
	{chromalib.NameVariable, []string{"variable.parameter", "variable"}},
	{chromalib.Punctuation, []string{"punctuation"}},
	{chromalib.GenericHeading, []string{"markup.heading"}},
	{chromalib.GenericStrong, []string{"markup.bold"}},
	{chromalib.GenericEmph, []string{"markup.italic"}},
	{chromalib.GenericInserted, []string{"markup.inserted"}},
	{chromalib.GenericDeleted, []string{"markup.deleted"}},
	{chromalib.Error, []string{"invalid"}},
}

// TokenEntry returns the chroma style entry for a scope pattern list: the
// first rule matching a pattern, tried in pattern order. Alpha is dropped.
func TokenEntry(rules []themec.TokenRule, patterns []string) (string, bool) {
	for _, p := range patterns {
		for _, r := range rules {
			if !r.Matches(p) {
				continue
			}
			if entry := styleEntry(r); entry != "" {
				return entry, true
			}
			break
		}
	}
	return "", false
}

func styleEntry(r themec.TokenRule) string {
	var parts []string
	if r.Bold() {
		parts = append(parts, "bold")
	}
	if r.Italic() {
		parts = append(parts, "italic")
	}
	if r.Underline() {
		parts = append(parts, "underline")
	}
	if c, ok := themec.ParseHex(r.Foreground); ok {
		parts = append(parts, c.RGB.Hex())
	}
	return strings.Join(parts, " ")
}

// NewStyle builds a chroma style from a theme document. The document must
// carry a name and the editor background and foreground colors.
func NewStyle(doc *themec.Table) (*chromalib.Style, error) {
	name, ok := doc.String("name")
	if !ok {
		return nil, fmt.Errorf("%w: name", themec.ErrMissingField)
	}
	colors := doc.Table("colors")
	if colors == nil {
		return nil, fmt.Errorf("colors: %w", themec.ErrNotTable)
	}
	editor := func(key string) (string, error) {
		s, _ := colors.String(key)
		c, ok := themec.ParseHex(s)
		if !ok {
			return "", fmt.Errorf("%w: %s", themec.ErrMissingColor, key)
		}
		return c.RGB.Hex(), nil
	}
	bg, err := editor("editor.background")
	if err != nil {
		return nil, err
	}
	fg, err := editor("editor.foreground")
	if err != nil {
		return nil, err
	}

	b := chromalib.NewStyleBuilder(name)
	b.Add(chromalib.Background, fg+" bg:"+bg)
	if s, ok := colors.String("editorLineNumber.foreground"); ok {
		if c, ok := themec.ParseHex(s); ok {
			b.Add(chromalib.LineNumbers, c.RGB.Hex())
		}
	}
	if s, ok := colors.String("editor.lineHighlightBackground"); ok {
		if c, ok := themec.ParseHex(s); ok {
			b.Add(chromalib.LineHighlight, "bg:"+c.RGB.Hex())
		}
	}

	rules := themec.TokenRules(doc)
	for _, m := range scopeMappings {
		if entry, ok := TokenEntry(rules, m.scopes); ok {
			b.Add(m.token, entry)
		}
	}
	return b.Build()
}
