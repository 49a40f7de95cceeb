package themec

// Variant selects the transformations applied to a compiled theme.
type Variant struct {
	OLED       bool
	Compat     bool
	Monochrome bool
	Print      bool
	Family     string // monochrome palette family, see ParseFamily
}

// IsBase reports whether no transformation is selected.
func (v Variant) IsBase() bool {
	return !v.OLED && !v.Compat && !v.Monochrome && !v.Print
}

// Name returns the display name for the variant, built by appending the
// variant suffixes to current. Variants without an OLED, compat or
// monochrome flag keep current.
func (v Variant) Name(current string) string {
	name := current
	if v.OLED {
		name += " OLED"
	}
	if v.Monochrome {
		name += " Monochrom"
		if label := ParseFamily(v.Family).Label(); label != "" {
			name += " (" + label + ")"
		}
	}
	if v.Compat {
		name += " (compatibility)"
	}
	return name
}
