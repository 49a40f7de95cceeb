// Package toml decodes TOML theme sources into ordered documents.
package toml

import (
	"fmt"
	"io"
	"sort"
	"strings"

	tomllib "github.com/BurntSushi/toml"
	"github.com/nyoom-engineering/themec"
)

// Compile-time interface verification.
var _ themec.Decoder = (*Decoder)(nil)

// Decoder reads TOML documents, keeping keys in source order.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// keySep joins key paths; it cannot occur in a TOML key.
const keySep = "\x00"

// Decode parses r into a table whose keys follow their order in the source.
func (d *Decoder) Decode(r io.Reader) (*themec.Table, error) {
	var raw map[string]any
	md, err := tomllib.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	order := make(map[string]int)
	for i, k := range md.Keys() {
		path := strings.Join(k, keySep)
		if _, ok := order[path]; !ok {
			order[path] = i
		}
	}
	b := builder{order: order}
	return b.table("", raw), nil
}

type builder struct {
	order map[string]int
}

// table converts m, ordering keys by first appearance. Keys the metadata
// does not report, such as some inline table members, follow in
// lexical order.
func (b builder) table(prefix string, m map[string]any) *themec.Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := b.order[b.path(prefix, keys[i])]
		oj, jok := b.order[b.path(prefix, keys[j])]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})

	t := themec.NewTable()
	for _, k := range keys {
		t.Set(k, b.value(b.path(prefix, k), m[k]))
	}
	return t
}

func (b builder) path(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + keySep + key
}

func (b builder) value(path string, v any) any {
	switch v := v.(type) {
	case map[string]any:
		return b.table(path, v)
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = b.table(path, m)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = b.value(path, e)
		}
		return out
	default:
		return v
	}
}
