// Package chroma exports themes as chroma styles and highlights source code
// with them.
package chroma

import (
	"io"
	"path/filepath"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var (
	_ themec.Tokenizer = (*Tokenizer)(nil)
	_ themec.Encoder   = (*CSSEncoder)(nil)
)

// Tokenizer extracts styled tokens using a chroma style.
type Tokenizer struct {
	style *chromalib.Style
}

// NewTokenizer creates a tokenizer that colors tokens with style.
func NewTokenizer(style *chromalib.Style) *Tokenizer {
	return &Tokenizer{style: style}
}

// Tokenize splits source code into styled tokens for the given language.
// Returns nil if the language is not supported and an empty slice for empty
// source.
func (t *Tokenizer) Tokenize(language, source string) []themec.Token {
	if source == "" {
		return []themec.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []themec.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = append(tokens, themec.Token{
			Text:  token.Value,
			Style: t.styleFor(token.Type),
		})
	}
	return tokens
}

func (t *Tokenizer) styleFor(tt chromalib.TokenType) themec.Style {
	entry := t.style.Get(tt)
	var s themec.Style
	if entry.Colour.IsSet() {
		s.Foreground = entry.Colour.String()
	}
	if entry.Background.IsSet() && tt != chromalib.Background {
		s.Background = entry.Background.String()
	}
	s.Bold = entry.Bold == chromalib.Yes
	s.Italic = entry.Italic == chromalib.Yes
	s.Underline = entry.Underline == chromalib.Yes
	return s
}

// LanguageFor returns the chroma language name for a file path, or an empty
// string if it cannot be determined.
func LanguageFor(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// CSSEncoder writes a theme as chroma HTML class CSS.
type CSSEncoder struct{}

// NewCSSEncoder creates a new CSSEncoder.
func NewCSSEncoder() *CSSEncoder {
	return &CSSEncoder{}
}

// Encode writes the CSS for doc's chroma style.
func (e *CSSEncoder) Encode(w io.Writer, doc *themec.Table) error {
	style, err := NewStyle(doc)
	if err != nil {
		return err
	}
	return html.New(html.WithClasses(true)).WriteCSS(w, style)
}
