// Package plist writes property-list theme formats: TextMate tmTheme and
// Xcode color themes.
package plist

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/nyoom-engineering/themec"
	"howett.net/plist"
)

// Compile-time interface verification.
var (
	_ themec.Encoder = (*TmThemeEncoder)(nil)
	_ themec.Encoder = (*XcodeEncoder)(nil)
)

// TmTheme is a TextMate theme.
type TmTheme struct {
	Name     string `plist:"name"`
	Settings []any  `plist:"settings"`
	UUID     string `plist:"uuid"`
	License  string `plist:"license"`
}

// GlobalSettings is the scope-less first entry of a tmTheme.
type GlobalSettings struct {
	Background    string `plist:"background,omitempty"`
	Caret         string `plist:"caret,omitempty"`
	Foreground    string `plist:"foreground,omitempty"`
	Selection     string `plist:"selection,omitempty"`
	LineHighlight string `plist:"lineHighlight,omitempty"`
}

type globalEntry struct {
	Settings GlobalSettings `plist:"settings"`
}

// ScopeSettings styles one or more scopes.
type ScopeSettings struct {
	Name     string            `plist:"name"`
	Scope    string            `plist:"scope"`
	Settings map[string]string `plist:"settings"`
}

// NewTmTheme converts a theme document. Token entries without a scope are
// dropped; array scopes are joined with ", ".
func NewTmTheme(doc *themec.Table, id uuid.UUID) (*TmTheme, error) {
	name, ok := doc.String("name")
	if !ok {
		return nil, fmt.Errorf("%w: name", themec.ErrMissingField)
	}
	colors := doc.Table("colors")
	if colors == nil {
		return nil, fmt.Errorf("colors: %w", themec.ErrNotTable)
	}

	global := func(key string) string {
		s, _ := colors.String(key)
		return s
	}
	settings := []any{globalEntry{Settings: GlobalSettings{
		Background:    global("editor.background"),
		Caret:         global("editorCursor.foreground"),
		Foreground:    global("editor.foreground"),
		Selection:     global("editor.selectionBackground"),
		LineHighlight: global("focusBorder"),
	}}}

	for _, item := range doc.Array("tokenColors") {
		entry, ok := item.(*themec.Table)
		if !ok {
			continue
		}
		scope, ok := joinScope(entry)
		if !ok {
			continue
		}
		entryName, _ := entry.String("name")
		settings = append(settings, ScopeSettings{
			Name:     entryName,
			Scope:    scope,
			Settings: stringValues(entry.Table("settings")),
		})
	}

	return &TmTheme{
		Name:     name,
		Settings: settings,
		UUID:     id.String(),
		License:  "MIT",
	}, nil
}

func joinScope(entry *themec.Table) (string, bool) {
	v, ok := entry.Get("scope")
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}

func stringValues(t *themec.Table) map[string]string {
	out := make(map[string]string)
	if t == nil {
		return out
	}
	for _, k := range t.Keys() {
		if s, ok := t.String(k); ok {
			out[k] = s
		}
	}
	return out
}

// TmThemeEncoder writes tmTheme XML property lists.
type TmThemeEncoder struct {
	// NewUUID generates the theme identifier. Defaults to uuid.New.
	NewUUID func() uuid.UUID
}

// NewTmThemeEncoder creates a new TmThemeEncoder.
func NewTmThemeEncoder() *TmThemeEncoder {
	return &TmThemeEncoder{NewUUID: uuid.New}
}

// Encode writes doc as a tmTheme.
func (e *TmThemeEncoder) Encode(w io.Writer, doc *themec.Table) error {
	newUUID := e.NewUUID
	if newUUID == nil {
		newUUID = uuid.New
	}
	tm, err := NewTmTheme(doc, newUUID())
	if err != nil {
		return err
	}
	return writeXML(w, tm)
}

func writeXML(w io.Writer, v any) error {
	enc := plist.NewEncoderForFormat(w, plist.XMLFormat)
	enc.Indent("\t")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding plist: %w", err)
	}
	return nil
}
