package themec_test

import (
	"fmt"
	"testing"

	"github.com/nyoom-engineering/themec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	t.Parallel()

	t.Run("parses six digit colors", func(t *testing.T) {
		t.Parallel()

		c, ok := themec.ParseHex("#08bdba")

		require.True(t, ok)
		assert.Equal(t, themec.RGB{0x08, 0xbd, 0xba}, c.RGB)
		assert.False(t, c.HasAlpha)
	})

	t.Run("parses eight digit colors with alpha", func(t *testing.T) {
		t.Parallel()

		c, ok := themec.ParseHex("#08bdba80")

		require.True(t, ok)
		assert.Equal(t, themec.RGB{0x08, 0xbd, 0xba}, c.RGB)
		assert.True(t, c.HasAlpha)
		assert.Equal(t, uint8(0x80), c.Alpha)
	})

	t.Run("expands shorthand nibbles", func(t *testing.T) {
		t.Parallel()

		c, ok := themec.ParseHex("#5a0")

		require.True(t, ok)
		assert.Equal(t, themec.RGB{0x55, 0xaa, 0x00}, c.RGB)
		assert.False(t, c.HasAlpha)
	})

	t.Run("expands shorthand alpha", func(t *testing.T) {
		t.Parallel()

		c, ok := themec.ParseHex("#fff8")

		require.True(t, ok)
		assert.Equal(t, themec.RGB{0xff, 0xff, 0xff}, c.RGB)
		assert.True(t, c.HasAlpha)
		assert.Equal(t, uint8(0x88), c.Alpha)
	})

	t.Run("expands every nibble to itself times 17", func(t *testing.T) {
		t.Parallel()

		for n := 0; n < 16; n++ {
			s := fmt.Sprintf("#%x%x%x", n, n, n)
			c, ok := themec.ParseHex(s)
			require.True(t, ok, s)
			want := uint8(n * 17)
			assert.Equal(t, themec.RGB{want, want, want}, c.RGB, s)
		}
	})

	t.Run("accepts upper and mixed case", func(t *testing.T) {
		t.Parallel()

		upper, ok := themec.ParseHex("#08BDBA")
		require.True(t, ok)
		mixed, ok := themec.ParseHex("#08bDbA")
		require.True(t, ok)

		assert.Equal(t, themec.RGB{0x08, 0xbd, 0xba}, upper.RGB)
		assert.Equal(t, upper, mixed)
	})

	t.Run("parses extremes", func(t *testing.T) {
		t.Parallel()

		black, ok := themec.ParseHex("#000000")
		require.True(t, ok)
		white, ok := themec.ParseHex("#FFFFFFFF")
		require.True(t, ok)

		assert.Equal(t, themec.RGB{}, black.RGB)
		assert.Equal(t, themec.RGB{0xff, 0xff, 0xff}, white.RGB)
		assert.Equal(t, uint8(0xff), white.Alpha)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{
			"",
			"#",
			"161616",
			"#1",
			"#12",
			"#12345",
			"#1234567",
			"#123456789",
			"#gggggg",
			"#12345z",
			" #161616",
			"#161616 ",
			"rgb(0,0,0)",
		} {
			_, ok := themec.ParseHex(s)
			assert.False(t, ok, "%q", s)
		}
	})
}

func TestFormatHex(t *testing.T) {
	t.Parallel()

	t.Run("formats lowercase without alpha", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "#0f62fe", themec.FormatHex(themec.RGB{0x0f, 0x62, 0xfe}, 0, false))
	})

	t.Run("formats alpha when present", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "#0f62fe0a", themec.FormatHex(themec.RGB{0x0f, 0x62, 0xfe}, 0x0a, true))
	})

	t.Run("never emits shorthand", func(t *testing.T) {
		t.Parallel()

		c, ok := themec.ParseHex("#abc")
		require.True(t, ok)

		assert.Equal(t, "#aabbcc", c.String())
	})

	t.Run("round trips six and eight digit forms", func(t *testing.T) {
		t.Parallel()

		for v := 0; v < 1<<24; v += 0x010307 {
			s := fmt.Sprintf("#%06x", v)
			c, ok := themec.ParseHex(s)
			require.True(t, ok, s)
			assert.Equal(t, s, c.String())

			sa := s + "7f"
			ca, ok := themec.ParseHex(sa)
			require.True(t, ok, sa)
			assert.Equal(t, sa, ca.String())
		}
	})

	t.Run("normalizes case", func(t *testing.T) {
		t.Parallel()

		c, ok := themec.ParseHex("#DDE1E6")
		require.True(t, ok)

		assert.Equal(t, "#dde1e6", c.String())
	})
}

func TestRGB_Packed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0x08bdba), themec.RGB{0x08, 0xbd, 0xba}.Packed())
	assert.Equal(t, uint32(0xffffff), themec.RGB{0xff, 0xff, 0xff}.Packed())
	assert.Equal(t, uint32(0), themec.RGB{}.Packed())
}
