package themec

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Family identifies a gray palette family used for monochrome reduction.
type Family int

// Palette families.
const (
	FamilyGray Family = iota
	FamilyCoolGray
	FamilyWarmGray

	familyCount
)

// IBM Carbon gray families, darkest (100) to lightest (10).
var familyBases = [familyCount][]string{
	FamilyGray: {
		"#161616", "#262626", "#393939", "#525252", "#6f6f6f",
		"#8d8d8d", "#a8a8a8", "#c6c6c6", "#e0e0e0", "#f4f4f4",
	},
	FamilyCoolGray: {
		"#121619", "#21272a", "#343a3f", "#4d5358", "#697077",
		"#878d96", "#a2a9b0", "#c1c7cd", "#dde1e6", "#f2f4f8",
	},
	FamilyWarmGray: {
		"#171414", "#272525", "#3c3838", "#565151", "#726e6e",
		"#8f8b8b", "#ada8a8", "#cac5c4", "#e5e0df", "#f7f3f2",
	},
}

// rampExtras are shared by every family so that shades produced by the OLED
// table and the base theme always have an exact match.
var rampExtras = []string{
	"#000000", "#0b0b0b", "#0f0f0f", "#161616", "#1b1b1b", "#1e1e1e", "#212121",
	"#262626", "#393939", "#525252", "#dde1e6", "#f2f4f8", "#ffffff",
}

// ParseFamily maps a family name to a Family. Unknown names, including the
// empty string, map to FamilyGray.
func ParseFamily(name string) Family {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "coolgray", "cool-gray", "cool":
		return FamilyCoolGray
	case "warmgray", "warm-gray", "warm":
		return FamilyWarmGray
	default:
		return FamilyGray
	}
}

// Base returns a copy of the family's 10 anchors, darkest first.
func (f Family) Base() []string {
	if f < 0 || f >= familyCount {
		f = FamilyGray
	}
	return append([]string(nil), familyBases[f]...)
}

// Label returns the display suffix for the family, empty for plain gray.
func (f Family) Label() string {
	switch f {
	case FamilyCoolGray:
		return "Cool Gray"
	case FamilyWarmGray:
		return "Warm Gray"
	default:
		return ""
	}
}

func (f Family) String() string {
	switch f {
	case FamilyCoolGray:
		return "cool-gray"
	case FamilyWarmGray:
		return "warm-gray"
	default:
		return "gray"
	}
}

// Ramp is an immutable set of reference colors sorted by ascending luminance.
type Ramp struct {
	lums   []float32
	colors []RGB
}

// BuildRamp builds a ramp from the shared extras followed by the 10 family
// anchors. Duplicate colors keep their first occurrence; ties in luminance
// keep insertion order.
func BuildRamp(base []string) (*Ramp, error) {
	if len(base) != 10 {
		return nil, fmt.Errorf("%w: got %d", ErrFamilySize, len(base))
	}

	type entry struct {
		lum float32
		rgb RGB
	}
	entries := make([]entry, 0, len(rampExtras)+len(base))
	seen := make(map[uint32]struct{}, len(rampExtras)+len(base))

	for _, list := range [][]string{rampExtras, base} {
		for _, s := range list {
			c, ok := ParseHex(s)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			key := c.RGB.Packed()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, entry{lum: c.RGB.Luminance(), rgb: c.RGB})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].lum < entries[j].lum })

	r := &Ramp{
		lums:   make([]float32, len(entries)),
		colors: make([]RGB, len(entries)),
	}
	for i, e := range entries {
		r.lums[i] = e.lum
		r.colors[i] = e.rgb
	}
	return r, nil
}

// Len returns the number of entries.
func (r *Ramp) Len() int {
	return len(r.lums)
}

// Luminances returns a copy of the ascending luminance sequence.
func (r *Ramp) Luminances() []float32 {
	return append([]float32(nil), r.lums...)
}

// Colors returns a copy of the entries' colors in luminance order.
func (r *Ramp) Colors() []RGB {
	return append([]RGB(nil), r.colors...)
}

// Nearest returns the entry whose luminance is closest to target.
func (r *Ramp) Nearest(target float32) RGB {
	return r.colors[NearestIndex(r.lums, target)]
}

// Registry lazily builds and caches one ramp per family. A Registry is safe
// for concurrent use; each family is built at most once.
type Registry struct {
	once  [familyCount]sync.Once
	ramps [familyCount]*Ramp
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Ramp returns the ramp for f, building it on first use.
func (r *Registry) Ramp(f Family) *Ramp {
	if f < 0 || f >= familyCount {
		f = FamilyGray
	}
	r.once[f].Do(func() {
		r.ramps[f] = mustBuildRamp(familyBases[f])
	})
	return r.ramps[f]
}

// Lookup returns the ramp for a family name; see ParseFamily.
func (r *Registry) Lookup(name string) *Ramp {
	return r.Ramp(ParseFamily(name))
}

// mustBuildRamp is only used with the built-in family tables.
func mustBuildRamp(base []string) *Ramp {
	r, err := BuildRamp(base)
	if err != nil {
		panic("themec: built-in palette: " + err.Error())
	}
	return r
}
