package themec

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// AverageChannel returns the midpoint of a and b without overflowing 8 bits.
// Odd sums round down: AverageChannel(0, 255) == 127.
func AverageChannel(a, b uint8) uint8 {
	return (a & b) + ((a ^ b) >> 1)
}

// Midpoint averages two colors channel by channel.
func Midpoint(a, b RGB) RGB {
	return RGB{
		AverageChannel(a[0], b[0]),
		AverageChannel(a[1], b[1]),
		AverageChannel(a[2], b[2]),
	}
}

// MidpointHex returns the channel midpoint of two hex colors as "#rrggbb".
// Alpha on either input is ignored.
func MidpointHex(a, b string) (string, error) {
	ca, cb, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return Midpoint(ca, cb).Hex(), nil
}

// MidpointHexLinear is like MidpointHex but averages in linear light, which
// keeps the perceived brightness of the result between the two inputs.
func MidpointHexLinear(a, b string) (string, error) {
	ca, cb, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	r1, g1, b1 := toColorful(ca).LinearRgb()
	r2, g2, b2 := toColorful(cb).LinearRgb()
	mid := colorful.LinearRgb((r1+r2)/2, (g1+g2)/2, (b1+b2)/2).Clamped()
	r, g, bl := mid.RGB255()
	return RGB{r, g, bl}.Hex(), nil
}

// Invert returns the bitwise complement of every channel.
func Invert(c RGB) RGB {
	return RGB{^c[0], ^c[1], ^c[2]}
}

func parsePair(a, b string) (RGB, RGB, error) {
	ca, ok := ParseHex(a)
	if !ok {
		return RGB{}, RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, a)
	}
	cb, ok := ParseHex(b)
	if !ok {
		return RGB{}, RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, b)
	}
	return ca.RGB, cb.RGB, nil
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}
