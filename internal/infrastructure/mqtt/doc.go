// Package mqtt publishes LLTF telemetry to an MQTT broker.
//
// It wraps paho.mqtt.golang with connection management, Last Will and
// Testament for offline detection, and retained state publishing. The
// module is publish-only: wavelength state and host status go out, and
// nothing is subscribed to.
//
// # Topics
//
//	lltf/state/{system}/wavelength   retained JSON wavelength state
//	lltf/system/status               retained online/offline status + LWT
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil { ... }
//	defer client.Close()
//
//	topic := mqtt.Topics{}.WavelengthState("M000010263")
//	err = client.PublishRetained(topic, payload)
package mqtt
