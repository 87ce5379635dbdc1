package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteWavelength records a wavelength move for a filter system.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Disconnected clients drop the point silently (telemetry is
// best-effort).
//
// Parameters:
//   - systemName: Filter system identifier (e.g., "M000010263")
//   - nm: The set wavelength in nanometres
//   - grating: The grating index used for the move
//
// Example:
//
//	client.WriteWavelength("M000010263", 632.8, 0)
func (c *Client) WriteWavelength(systemName string, nm float64, grating int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"lltf_wavelength",
		map[string]string{
			"system": systemName,
		},
		map[string]interface{}{
			"wavelength_nm": nm,
			"grating":       grating,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
