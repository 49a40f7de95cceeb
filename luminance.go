package themec

import "math"

// Rec. 709 / WCAG relative luminance weights.
const (
	weightR = 0.2126
	weightG = 0.7152
	weightB = 0.0722
)

// linearTable maps every 8-bit sRGB channel value to linear light.
var linearTable = buildLinearTable()

func buildLinearTable() [256]float64 {
	var table [256]float64
	for i := range table {
		table[i] = srgbToLinear(float64(i) / 255)
	}
	return table
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance returns the relative luminance of an sRGB color, in [0, 1].
// The sum is taken in float64 and narrowed once; for 8-bit input this never
// moves a value across the 0.02, 0.08 or 0.5 stylesheet thresholds relative
// to an all-float32 computation.
func Luminance(r, g, b uint8) float32 {
	return float32(weightR*linearTable[r] + weightG*linearTable[g] + weightB*linearTable[b])
}

// Luminance returns the relative luminance of c.
func (c RGB) Luminance() float32 {
	return Luminance(c[0], c[1], c[2])
}
