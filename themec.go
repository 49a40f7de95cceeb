// Package themec provides the color engine and domain types for compiling a
// source-of-truth editor theme into editor-specific formats and variants.
package themec

import (
	"context"
	"errors"
	"io"
)

// Domain errors.
var (
	ErrInvalidHex   = errors.New("invalid hex color")
	ErrFamilySize   = errors.New("palette family must have exactly 10 anchors")
	ErrMissingColor = errors.New("missing required color")
	ErrMissingField = errors.New("missing required field")
	ErrNotTable     = errors.New("value is not a table")
	ErrNoInput      = errors.New("no input: pass a file path or pipe a theme")
)

// Decoder parses a theme document into an ordered tree.
type Decoder interface {
	Decode(r io.Reader) (*Table, error)
}

// Encoder serializes a theme document tree.
type Encoder interface {
	Encode(w io.Writer, doc *Table) error
}

// Watcher observes a file and invokes onChange after it settles.
type Watcher interface {
	// Watch blocks until ctx is cancelled or the watch cannot continue.
	// Errors returned by onChange do not stop the watch.
	Watch(ctx context.Context, path string, onChange func(context.Context) error) error
}

// Tokenizer splits source code into styled tokens.
type Tokenizer interface {
	// Tokenize returns nil when the language is unknown.
	Tokenize(language, source string) []Token
}

// Previewer displays a theme document interactively.
type Previewer interface {
	// Preview blocks until the user exits or ctx is cancelled.
	Preview(ctx context.Context, doc *Table) error
}
