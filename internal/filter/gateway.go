package filter

// Handle is an opaque reference to an open device resource, owned by one
// controller at a time. The zero value means "no resource".
type Handle uintptr

// Gateway is the capability interface over the native PE_Filter SDK.
//
// Two implementations exist: SDKGateway marshals each call across the
// foreign-function boundary to PE_Filter_SDK.dll, and SimGateway emulates
// the device in memory. The controller selects one at Initialize time so
// no simulation branching leaks into the device operations.
//
// Every call is blocking with no timeout handling at this layer; the SDK
// is assumed to return promptly. The Status result is the device's
// answer (0 is success); the error result means the call itself could
// not be made (library missing, marshaling failure).
type Gateway interface {
	// Create allocates a device resource bound to the device description
	// file and returns its handle.
	Create(configPath string) (Handle, Status, error)

	// Open connects the resource to the named system.
	Open(h Handle, systemName string) (Status, error)

	// SystemCount returns the number of connected filter systems.
	SystemCount(h Handle) (int, error)

	// Wavelength returns the current central wavelength in nanometres.
	Wavelength(h Handle) (float64, Status, error)

	// SetWavelengthOnGrating moves the filter to the wavelength using the
	// given grating.
	SetWavelengthOnGrating(h Handle, grating int, nm float64) (Status, error)

	// Close disconnects from the device. The resource stays allocated
	// until Destroy.
	Close(h Handle) (Status, error)

	// Destroy releases the device resource. The handle is invalid
	// afterwards.
	Destroy(h Handle) error
}
