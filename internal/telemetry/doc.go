// Package telemetry streams wavelength moves to external consumers.
//
// A Publisher implements the controller's MoveSink interface and fans
// each successful move out to two optional sinks: a retained MQTT state
// topic (lltf/state/{system}/wavelength) and an InfluxDB measurement
// (lltf_wavelength). Both are best-effort; failures are logged and never
// reach the caller.
package telemetry
