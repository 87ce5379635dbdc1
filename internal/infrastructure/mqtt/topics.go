package mqtt

import "fmt"

// Topic prefixes for LLTF telemetry.
//
// All topics use the flat scheme: lltf/{category}/{system}/{field}
const (
	// TopicPrefix is the base for all LLTF topics.
	TopicPrefix = "lltf"

	// TopicPrefixSystem is the base for host status topics.
	TopicPrefixSystem = "lltf/system"
)

// Topics provides builders for LLTF MQTT topics.
// Using these helpers ensures consistent topic naming across the module.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.WavelengthState("M000010263")
//	// Returns: "lltf/state/M000010263/wavelength"
type Topics struct{}

// WavelengthState returns the retained state topic for a filter system's
// current wavelength.
//
// Example: lltf/state/M000010263/wavelength
func (Topics) WavelengthState(systemName string) string {
	return fmt.Sprintf("%s/state/%s/wavelength", TopicPrefix, systemName)
}

// SystemStatus returns the topic for host online/offline status.
//
// Example: lltf/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
