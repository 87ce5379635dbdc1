// Package filter controls NKT Photonics LLTF (Laser Line Tunable
// Filter) devices through the vendor's PE_Filter SDK.
//
// The package centres on Controller, which owns one device session and
// exposes wavelength get/set with automatic grating selection. The
// foreign-function boundary is abstracted behind the Gateway interface
// with two implementations:
//
//   - SDKGateway marshals calls to PE_Filter_SDK.dll (Windows only).
//   - SimGateway emulates a device in memory, including a configurable
//     measurement uncertainty, so development and tests need no hardware.
//
// Native PE_STATUS codes are translated into Go errors: StatusError for
// failed native calls, plus sentinel errors (ErrNotInitialized,
// ErrInvalidGrating, ErrUnsupportedWavelength, ...) matchable with
// errors.Is.
//
// # Concurrency
//
// A Controller is deliberately single-threaded: the vendor handle is a
// single mutable resource with one owner, every native call blocks, and
// no locking is provided. Wrap the controller yourself if you need to
// drive it from multiple goroutines.
//
// # Usage
//
//	desc, err := descriptor.NewLoader().Load("xml_files/M000010263.xml")
//	if err != nil { ... }
//
//	ctrl := filter.New(desc)
//	err = ctrl.Session(false, 0, func(c *filter.Controller) error {
//	    if err := c.SetWavelength(632.8); err != nil {
//	        return err
//	    }
//	    nm, err := c.Wavelength()
//	    ...
//	})
package filter
