package mock

import (
	"context"

	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var _ themec.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of themec.Previewer.
type Previewer struct {
	PreviewFn func(ctx context.Context, doc *themec.Table) error
}

func (p *Previewer) Preview(ctx context.Context, doc *themec.Table) error {
	return p.PreviewFn(ctx, doc)
}

var _ themec.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a mock implementation of themec.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []themec.Token
}

func (t *Tokenizer) Tokenize(language, source string) []themec.Token {
	return t.TokenizeFn(language, source)
}
