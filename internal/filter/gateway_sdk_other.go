//go:build !windows

package filter

// SDKGateway is a stub on non-Windows systems: the vendor ships
// PE_Filter_SDK.dll for Windows only. Simulation mode works everywhere.
type SDKGateway struct{}

// NewSDKGateway returns ErrUnsupportedPlatform on non-Windows systems.
func NewSDKGateway() (*SDKGateway, error) {
	return nil, ErrUnsupportedPlatform
}

// Create is unavailable on this platform.
func (g *SDKGateway) Create(string) (Handle, Status, error) {
	return 0, StatusUnknown, ErrUnsupportedPlatform
}

// Open is unavailable on this platform.
func (g *SDKGateway) Open(Handle, string) (Status, error) {
	return StatusUnknown, ErrUnsupportedPlatform
}

// SystemCount is unavailable on this platform.
func (g *SDKGateway) SystemCount(Handle) (int, error) {
	return 0, ErrUnsupportedPlatform
}

// Wavelength is unavailable on this platform.
func (g *SDKGateway) Wavelength(Handle) (float64, Status, error) {
	return 0, StatusUnknown, ErrUnsupportedPlatform
}

// SetWavelengthOnGrating is unavailable on this platform.
func (g *SDKGateway) SetWavelengthOnGrating(Handle, int, float64) (Status, error) {
	return StatusUnknown, ErrUnsupportedPlatform
}

// Close is unavailable on this platform.
func (g *SDKGateway) Close(Handle) (Status, error) {
	return StatusUnknown, ErrUnsupportedPlatform
}

// Destroy is unavailable on this platform.
func (g *SDKGateway) Destroy(Handle) error {
	return ErrUnsupportedPlatform
}
