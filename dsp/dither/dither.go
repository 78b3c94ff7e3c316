// Package dither converts float32 samples to integer PCM with optional
// dither noise.
package dither

import "fmt"

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF), the most common choice.
	DitherTriangular

	ditherTypeCount // sentinel for validation
)

var ditherTypeNames = [ditherTypeCount]string{
	"None", "Rectangular", "Triangular",
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}

	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps "none", "rect" or "tpdf" to a DitherType.
func ParseDitherType(s string) (DitherType, error) {
	switch s {
	case "none", "off":
		return DitherNone, nil
	case "rect", "rpdf":
		return DitherRectangular, nil
	case "tpdf", "triangular":
		return DitherTriangular, nil
	default:
		return DitherNone, fmt.Errorf("dither: unknown dither type %q", s)
	}
}
