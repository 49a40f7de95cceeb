package jsonc_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nyoom-engineering/themec"
	"github.com/nyoom-engineering/themec/jsonc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("keeps source key order", func(t *testing.T) {
		t.Parallel()

		doc, err := jsonc.NewDecoder().Decode(strings.NewReader(
			`{"name":"Oxocarbon","colors":{"z.last":"#000000","a.first":"#ffffff"},"tokenColors":[]}`))

		require.NoError(t, err)
		assert.Equal(t, []string{"name", "colors", "tokenColors"}, doc.Keys())
		assert.Equal(t, []string{"z.last", "a.first"}, doc.Table("colors").Keys())
		assert.Equal(t, []any{}, doc.Array("tokenColors"))
	})

	t.Run("accepts comments and trailing commas", func(t *testing.T) {
		t.Parallel()

		doc, err := jsonc.NewDecoder().Decode(strings.NewReader(`{
			// theme name
			"name": "Oxocarbon",
			/* colors */
			"colors": {
				"editor.background": "#161616",
			},
		}`))

		require.NoError(t, err)
		bg, ok := doc.Table("colors").String("editor.background")
		assert.True(t, ok)
		assert.Equal(t, "#161616", bg)
	})

	t.Run("keeps numbers verbatim", func(t *testing.T) {
		t.Parallel()

		doc, err := jsonc.NewDecoder().Decode(strings.NewReader(`{"speed":4.0,"n":[1,2.50,true,null]}`))

		require.NoError(t, err)
		speed, _ := doc.Get("speed")
		assert.Equal(t, json.Number("4.0"), speed)
		assert.Equal(t, []any{json.Number("1"), json.Number("2.50"), true, nil}, doc.Array("n"))
	})

	t.Run("rejects non object roots", func(t *testing.T) {
		t.Parallel()

		_, err := jsonc.NewDecoder().Decode(strings.NewReader(`["#161616"]`))

		require.ErrorIs(t, err, themec.ErrNotTable)
	})

	t.Run("returns error for malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := jsonc.NewDecoder().Decode(strings.NewReader(`{"name": }`))

		require.Error(t, err)
	})
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	newDoc := func() *themec.Table {
		colors := themec.NewTable()
		colors.Set("editor.background", "#161616")
		doc := themec.NewTable()
		doc.Set("name", "Oxocarbon <OLED>")
		doc.Set("colors", colors)
		return doc
	}

	t.Run("writes compact JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, jsonc.NewEncoder().Encode(&buf, newDoc()))

		assert.Equal(t, `{"name":"Oxocarbon <OLED>","colors":{"editor.background":"#161616"}}`+"\n", buf.String())
	})

	t.Run("writes indented JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, jsonc.NewPrettyEncoder().Encode(&buf, newDoc()))

		want := "{\n  \"name\": \"Oxocarbon <OLED>\",\n  \"colors\": {\n    \"editor.background\": \"#161616\"\n  }\n}\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("round trips through the decoder", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, jsonc.NewEncoder().Encode(&buf, newDoc()))

		doc, err := jsonc.NewDecoder().Decode(&buf)

		require.NoError(t, err)
		assert.Equal(t, []string{"name", "colors"}, doc.Keys())
	})
}
