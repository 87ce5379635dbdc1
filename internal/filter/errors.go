package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanbray/lltf-core/internal/descriptor"
)

// Sentinel errors for filter operations.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, filter.ErrNotInitialized) {
//	    // call Initialize first
//	}
var (
	// ErrNotInitialized is returned when a device operation is attempted
	// before Initialize, or after Close.
	ErrNotInitialized = errors.New("filter: device not initialized")

	// ErrInvalidGrating is returned when an explicit grating index is not
	// one of the configured gratings.
	ErrInvalidGrating = errors.New("filter: invalid grating index")

	// ErrUnsupportedWavelength is returned when no grating supports the
	// requested wavelength in either its regular or extended range.
	ErrUnsupportedWavelength = errors.New("filter: unsupported wavelength")

	// ErrStatusFailure is the sentinel wrapped by every StatusError.
	ErrStatusFailure = errors.New("filter: native call failed")

	// ErrGatewayUnavailable is returned when the native SDK library
	// cannot be loaded or one of its entry points is missing.
	ErrGatewayUnavailable = errors.New("filter: native SDK unavailable")

	// ErrUnsupportedPlatform is returned when the native SDK gateway is
	// requested on a platform the vendor does not ship the DLL for.
	ErrUnsupportedPlatform = errors.New("filter: native SDK requires windows")
)

// StatusError reports a native SDK call that returned a non-success
// PE_STATUS. It wraps ErrStatusFailure so callers can match the class
// with errors.Is and still inspect the code.
type StatusError struct {
	// Op is the native operation that failed (e.g. "PE_Open").
	Op string

	// Status is the PE_STATUS code the SDK returned.
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("filter: %s failed with status %d: %s", e.Op, int(e.Status), e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrStatusFailure
}

// UnsupportedWavelengthError reports a wavelength outside every
// configured range. The message enumerates each grating's regular range
// for diagnostics. It wraps ErrUnsupportedWavelength.
type UnsupportedWavelengthError struct {
	// WavelengthNm is the requested wavelength.
	WavelengthNm float64

	// Gratings are the configured grating ranges at the time of the call.
	Gratings []descriptor.GratingRange
}

func (e *UnsupportedWavelengthError) Error() string {
	ranges := make([]string, len(e.Gratings))
	for i, g := range e.Gratings {
		ranges[i] = fmt.Sprintf("grating %d: %s", g.Index, g.Regular)
	}
	return fmt.Sprintf("filter: wavelength %g nm not supported, available ranges: %s",
		e.WavelengthNm, strings.Join(ranges, ", "))
}

func (e *UnsupportedWavelengthError) Unwrap() error {
	return ErrUnsupportedWavelength
}
