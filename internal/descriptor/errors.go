package descriptor

import "errors"

// Sentinel errors for device description loading.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, descriptor.ErrNotFound) {
//	    // prompt for an explicit path
//	}
var (
	// ErrNotFound is returned when no device description file exists at
	// the given path, or a directory scan finds no *.xml candidates.
	ErrNotFound = errors.New("descriptor: device description not found")

	// ErrMalformed is returned when the file is not well-formed XML.
	ErrMalformed = errors.New("descriptor: malformed device description")

	// ErrMissingComponent is returned when no Component element with
	// Type="Filter" and a non-empty Id is present.
	ErrMissingComponent = errors.New("descriptor: no Filter component in device description")

	// ErrMissingRange is returned when a Grating element lacks its Range
	// block or one of the four numeric range fields.
	ErrMissingRange = errors.New("descriptor: grating range fields missing")
)
