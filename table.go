package themec

import (
	"bytes"
	"encoding/json"
)

// Table is an insertion-ordered string-keyed map, the in-memory form of a
// theme document. Values are string, bool, int64, float64, json.Number,
// time.Time, []any or *Table.
type Table struct {
	keys   []string
	values map[string]any
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string]any)}
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set stores v under key. Existing keys keep their position.
func (t *Table) Set(key string, v any) {
	if t.values == nil {
		t.values = make(map[string]any)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Delete removes key if present.
func (t *Table) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Table returns the nested table under key, or nil.
func (t *Table) Table(key string) *Table {
	sub, _ := t.values[key].(*Table)
	return sub
}

// String returns the string under key.
func (t *Table) String(key string) (string, bool) {
	s, ok := t.values[key].(string)
	return s, ok
}

// Array returns the array under key, or nil.
func (t *Table) Array(key string) []any {
	a, _ := t.values[key].([]any)
	return a
}

// WalkStrings replaces every string leaf of the tree, including strings
// nested in arrays, with fn's result. Keys are not visited.
func (t *Table) WalkStrings(fn func(string) string) {
	for _, k := range t.keys {
		t.values[k] = walkValue(t.values[k], fn)
	}
}

func walkValue(v any, fn func(string) string) any {
	switch v := v.(type) {
	case string:
		return fn(v)
	case *Table:
		v.WalkStrings(fn)
		return v
	case []any:
		for i := range v {
			v[i] = walkValue(v[i], fn)
		}
		return v
	default:
		return v
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		keys:   append([]string(nil), t.keys...),
		values: make(map[string]any, len(t.values)),
	}
	for k, v := range t.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case *Table:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = cloneValue(v[i])
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the table as a JSON object with keys in insertion
// order. HTML characters are not escaped.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Table) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeScalar(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, t.values[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case *Table:
		return v.writeJSON(buf)
	case []any:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
