// Package config loads application configuration for the LLTF tooling.
//
// Configuration comes from a YAML file with environment variable
// overrides (LLTF_SECTION_KEY pattern). Precedence, lowest to highest:
// built-in defaults, YAML file, environment variables.
//
// Example config.yaml:
//
//	descriptor:
//	  path: "xml_files/M000010263.xml"
//	simulation:
//	  enabled: true
//	  uncertainty_nm: 0.1
//	history:
//	  enabled: true
//	  path: "./data/lltf.db"
//	mqtt:
//	  enabled: false
//	influxdb:
//	  enabled: false
//	logging:
//	  level: "info"
//	  format: "text"
//
// Note that the device description XML referenced by descriptor.path is
// a vendor artifact parsed by the descriptor package, not part of this
// configuration format.
package config
