// Package jsonc reads JSON-with-comments theme files and writes JSON themes.
package jsonc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nyoom-engineering/themec"
	"github.com/tailscale/hujson"
)

// Compile-time interface verification.
var _ themec.Decoder = (*Decoder)(nil)

// Decoder parses JSON documents that may contain comments and trailing
// commas, keeping object keys in source order.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads a single JSON object from r. Numbers are kept as json.Number.
func (d *Decoder) Decode(r io.Reader) (*themec.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("document root: %w", themec.ErrNotTable)
	}
	return decodeObject(dec)
}

// decodeObject reads members until the closing brace; the opening brace has
// been consumed.
func decodeObject(dec *json.Decoder) (*themec.Table, error) {
	t := themec.NewTable()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		t.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch tok {
	case json.Delim('{'):
		return decodeObject(dec)
	case json.Delim('['):
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	case json.Delim('}'), json.Delim(']'):
		return nil, errors.New("unexpected closing delimiter")
	default:
		return tok, nil
	}
}
