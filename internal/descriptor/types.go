package descriptor

import "fmt"

// Range is an inclusive wavelength interval in nanometres.
type Range struct {
	// Lower is the inclusive lower bound (nm).
	Lower float64 `json:"lower"`

	// Upper is the inclusive upper bound (nm).
	Upper float64 `json:"upper"`
}

// Contains reports whether the wavelength lies inside the range.
// Bounds are inclusive; there is no numeric tolerance.
func (r Range) Contains(nm float64) bool {
	return nm >= r.Lower && nm <= r.Upper
}

// String formats the range as "400-700 nm".
func (r Range) String() string {
	return fmt.Sprintf("%g-%g nm", r.Lower, r.Upper)
}

// GratingRange describes one physical grating element and the wavelength
// intervals it supports.
type GratingRange struct {
	// Index is the ordinal of the grating within the device description
	// (document order, 0-based). It is the index passed to the native
	// PE_SetWavelengthOnGrating call.
	Index int `json:"index"`

	// Regular is the interval the grating is rated to support accurately.
	Regular Range `json:"regular_range"`

	// Extended is a wider interval where the grating still functions with
	// reduced guarantees. Using it produces a warning, not an error.
	Extended Range `json:"extended_range"`
}

// Description is the parsed device description.
//
// It is immutable after loading: the controller reads it but never
// modifies it, and callers receive defensive copies of the grating list.
type Description struct {
	// SystemName identifies the device instance, taken from the Id
	// attribute of the Filter component. It is the name passed to the
	// native PE_Open call.
	SystemName string

	// Gratings lists the grating ranges in document order.
	Gratings []GratingRange

	// Path is the file the description was loaded from. Empty when the
	// description was built in memory (tests).
	Path string
}

// CloneGratings returns an independent copy of the grating list.
// Callers can modify the copy without affecting the description.
func (d *Description) CloneGratings() []GratingRange {
	if d.Gratings == nil {
		return nil
	}
	out := make([]GratingRange, len(d.Gratings))
	copy(out, d.Gratings)
	return out
}
