// Package mock provides test doubles for themec interfaces.
package mock

import (
	"io"

	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var _ themec.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of themec.Decoder.
type Decoder struct {
	DecodeFn func(r io.Reader) (*themec.Table, error)
}

func (d *Decoder) Decode(r io.Reader) (*themec.Table, error) {
	return d.DecodeFn(r)
}

var _ themec.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of themec.Encoder.
type Encoder struct {
	EncodeFn func(w io.Writer, doc *themec.Table) error
}

func (e *Encoder) Encode(w io.Writer, doc *themec.Table) error {
	return e.EncodeFn(w, doc)
}
