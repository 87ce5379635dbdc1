//go:build windows

package filter

import (
	"fmt"
	"math"
	"syscall"
	"unsafe"
)

// sdkDLLName is the vendor library shipped with the PE Filter SDK.
const sdkDLLName = "PE_Filter_SDK.dll"

// SDKGateway marshals gateway calls across the foreign-function boundary
// to the vendor's PE_Filter_SDK.dll.
//
// The DLL is loaded lazily by name, so it must be on the DLL search path
// (typically next to the executable). All calls are blocking; the SDK
// performs its own instrument I/O.
type SDKGateway struct {
	dll *syscall.LazyDLL

	procCreate                 *syscall.LazyProc
	procOpen                   *syscall.LazyProc
	procGetSystemCount         *syscall.LazyProc
	procGetWavelength          *syscall.LazyProc
	procSetWavelengthOnGrating *syscall.LazyProc
	procClose                  *syscall.LazyProc
	procDestroy                *syscall.LazyProc
}

// NewSDKGateway loads PE_Filter_SDK.dll and resolves its entry points.
//
// Returns ErrGatewayUnavailable (wrapped with the loader detail) when the
// DLL or one of its exports cannot be found.
func NewSDKGateway() (*SDKGateway, error) {
	dll := syscall.NewLazyDLL(sdkDLLName)
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrGatewayUnavailable, sdkDLLName, err)
	}

	g := &SDKGateway{
		dll:                        dll,
		procCreate:                 dll.NewProc("PE_Create"),
		procOpen:                   dll.NewProc("PE_Open"),
		procGetSystemCount:         dll.NewProc("PE_GetSystemCount"),
		procGetWavelength:          dll.NewProc("PE_GetWavelength"),
		procSetWavelengthOnGrating: dll.NewProc("PE_SetWavelengthOnGrating"),
		procClose:                  dll.NewProc("PE_Close"),
		procDestroy:                dll.NewProc("PE_Destroy"),
	}

	for _, proc := range []*syscall.LazyProc{
		g.procCreate, g.procOpen, g.procGetSystemCount, g.procGetWavelength,
		g.procSetWavelengthOnGrating, g.procClose, g.procDestroy,
	} {
		if err := proc.Find(); err != nil {
			return nil, fmt.Errorf("%w: resolving %s: %w", ErrGatewayUnavailable, proc.Name, err)
		}
	}

	return g, nil
}

// Create allocates an SDK resource bound to the device description file.
func (g *SDKGateway) Create(configPath string) (Handle, Status, error) {
	pathPtr, err := syscall.BytePtrFromString(configPath)
	if err != nil {
		return 0, StatusUnknown, fmt.Errorf("encoding config path: %w", err)
	}

	var handle uintptr
	st, _, _ := g.procCreate.Call(
		uintptr(unsafe.Pointer(pathPtr)),
		uintptr(unsafe.Pointer(&handle)),
	)
	return Handle(handle), Status(st), nil
}

// Open connects the resource to the named filter system.
func (g *SDKGateway) Open(h Handle, systemName string) (Status, error) {
	namePtr, err := syscall.BytePtrFromString(systemName)
	if err != nil {
		return StatusUnknown, fmt.Errorf("encoding system name: %w", err)
	}

	st, _, _ := g.procOpen.Call(uintptr(h), uintptr(unsafe.Pointer(namePtr)))
	return Status(st), nil
}

// SystemCount queries the number of connected filter systems.
// PE_GetSystemCount returns the count directly, not a status.
func (g *SDKGateway) SystemCount(h Handle) (int, error) {
	count, _, _ := g.procGetSystemCount.Call(uintptr(h))
	return int(count), nil
}

// Wavelength reads the current central wavelength.
func (g *SDKGateway) Wavelength(h Handle) (float64, Status, error) {
	var nm float64
	st, _, _ := g.procGetWavelength.Call(uintptr(h), uintptr(unsafe.Pointer(&nm)))
	return nm, Status(st), nil
}

// SetWavelengthOnGrating moves the filter on the given grating.
func (g *SDKGateway) SetWavelengthOnGrating(h Handle, grating int, nm float64) (Status, error) {
	st, _, _ := g.procSetWavelengthOnGrating.Call(
		uintptr(h),
		uintptr(grating),
		uintptr(math.Float64bits(nm)),
	)
	return Status(st), nil
}

// Close disconnects from the device.
func (g *SDKGateway) Close(h Handle) (Status, error) {
	st, _, _ := g.procClose.Call(uintptr(h))
	return Status(st), nil
}

// Destroy releases the SDK resource. PE_Destroy returns void.
func (g *SDKGateway) Destroy(h Handle) error {
	g.procDestroy.Call(uintptr(h)) //nolint:errcheck // PE_Destroy has no result
	return nil
}
