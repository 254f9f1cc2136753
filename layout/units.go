package layout

import (
	"fmt"
	"strings"
)

// This file defines the document units. All layout values are kept in points
// (1/72 inch, origin at the bottom-left corner of the page, y growing upwards).

// Unit represents the unit an author picked for a document.
type Unit int

const (
	UnitPT   Unit = iota // points
	UnitIN               // inches
	UnitCM               // centimeters
	UnitMM               // millimeters
	UnitPica             // picas (12pt)
)

// Conversion constants between pt and mm.
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "inch"
	case UnitPica:
		return "pica"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Points returns how many points one unit is worth; this is the unit-scale factor.
func (u Unit) Points() float64 {
	switch u {
	case UnitIN:
		return 72
	case UnitCM:
		return 72 / 2.54
	case UnitMM:
		return MmToPt
	case UnitPica:
		return 12
	default:
		return 1
	}
}

// ParseUnit maps a unit name from the pdf element to a Unit.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "inch", "in":
		return UnitIN, nil
	case "cm":
		return UnitCM, nil
	case "mm":
		return UnitMM, nil
	case "pica", "pc":
		return UnitPica, nil
	case "pt", "point", "points":
		return UnitPT, nil
	default:
		return UnitPT, fmt.Errorf("%w: 未知的单位 %q", ErrResolve, name)
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPT converts this length to points.
func (l Length) ToPT() float64 { return l.Value * l.Unit.Points() }

// ToMM converts this length to millimeters.
func (l Length) ToMM() float64 { return l.ToPT() * PtToMm }
