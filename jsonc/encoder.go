package jsonc

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var _ themec.Encoder = (*Encoder)(nil)

// Encoder writes theme documents as JSON followed by a newline.
type Encoder struct {
	// Indent, when non-empty, pretty-prints with this indent per level.
	Indent string
}

// NewEncoder creates a compact Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// NewPrettyEncoder creates an Encoder that indents with two spaces.
func NewPrettyEncoder() *Encoder {
	return &Encoder{Indent: "  "}
}

// Encode writes doc to w.
func (e *Encoder) Encode(w io.Writer, doc *themec.Table) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	if e.Indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", e.Indent); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
