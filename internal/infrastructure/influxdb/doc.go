// Package influxdb records LLTF wavelength telemetry in InfluxDB v2.
//
// It wraps the official influxdb-client-go with connection management
// and a non-blocking, batched write API. Writes are best-effort: a
// disconnected client drops points rather than blocking device control.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil { ... }
//	defer client.Close()
//
//	client.WriteWavelength("M000010263", 632.8, 0)
package influxdb
