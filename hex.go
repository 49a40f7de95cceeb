package themec

// RGB holds 8-bit red, green and blue channels.
type RGB [3]uint8

// Packed returns the 24-bit value (R<<16)|(G<<8)|B.
func (c RGB) Packed() uint32 {
	return uint32(c[0])<<16 | uint32(c[1])<<8 | uint32(c[2])
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return FormatHex(c, 0, false)
}

// HexColor is a parsed hex color token. Alpha is only meaningful when
// HasAlpha is set.
type HexColor struct {
	RGB      RGB
	Alpha    uint8
	HasAlpha bool
}

// String returns the canonical lowercase form, "#rrggbb" or "#rrggbbaa".
func (c HexColor) String() string {
	return FormatHex(c.RGB, c.Alpha, c.HasAlpha)
}

const invalidNibble = 0xff

var hexDecode = buildHexDecode()

func buildHexDecode() [256]uint8 {
	var table [256]uint8
	for i := range table {
		table[i] = invalidNibble
	}
	for i := uint8(0); i < 10; i++ {
		table['0'+i] = i
	}
	for i := uint8(0); i < 6; i++ {
		table['a'+i] = 10 + i
		table['A'+i] = 10 + i
	}
	return table
}

// decodeHex folds up to 8 hex digits into an integer.
func decodeHex(digits string) (uint32, bool) {
	var acc uint32
	for i := 0; i < len(digits); i++ {
		n := hexDecode[digits[i]]
		if n == invalidNibble {
			return 0, false
		}
		acc = acc<<4 | uint32(n)
	}
	return acc, true
}

func expandNibble(n uint32) uint8 {
	n &= 0xf
	return uint8(n<<4 | n)
}

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (any case).
// Shorthand digits are expanded by duplication, so "#5" becomes 0x55.
// It reports false for anything else.
func ParseHex(s string) (HexColor, bool) {
	if len(s) == 0 || s[0] != '#' {
		return HexColor{}, false
	}
	digits := s[1:]
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return HexColor{}, false
	}
	raw, ok := decodeHex(digits)
	if !ok {
		return HexColor{}, false
	}

	switch len(digits) {
	case 3:
		return HexColor{RGB: RGB{expandNibble(raw >> 8), expandNibble(raw >> 4), expandNibble(raw)}}, true
	case 4:
		return HexColor{
			RGB:      RGB{expandNibble(raw >> 12), expandNibble(raw >> 8), expandNibble(raw >> 4)},
			Alpha:    expandNibble(raw),
			HasAlpha: true,
		}, true
	case 6:
		return HexColor{RGB: RGB{uint8(raw >> 16), uint8(raw >> 8), uint8(raw)}}, true
	default:
		return HexColor{
			RGB:      RGB{uint8(raw >> 24), uint8(raw >> 16), uint8(raw >> 8)},
			Alpha:    uint8(raw),
			HasAlpha: true,
		}, true
	}
}

const hexDigits = "0123456789abcdef"

// FormatHex encodes channels as a lowercase "#rrggbb", or "#rrggbbaa" when
// hasAlpha is set.
func FormatHex(rgb RGB, alpha uint8, hasAlpha bool) string {
	n := 7
	if hasAlpha {
		n = 9
	}
	buf := make([]byte, n)
	buf[0] = '#'
	for i, b := range rgb {
		buf[1+2*i] = hexDigits[b>>4]
		buf[2+2*i] = hexDigits[b&0x0f]
	}
	if hasAlpha {
		buf[7] = hexDigits[alpha>>4]
		buf[8] = hexDigits[alpha&0x0f]
	}
	return string(buf)
}
