package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a temporary YAML config and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Descriptor.Dir != "xml_files" {
		t.Errorf("Descriptor.Dir = %q, want %q", cfg.Descriptor.Dir, "xml_files")
	}
	if cfg.Simulation.Enabled {
		t.Error("Simulation.Enabled = true, want false")
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
	if !cfg.History.WALMode {
		t.Error("History.WALMode = false, want true")
	}
	if cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("telemetry enabled by default, want disabled")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
descriptor:
  path: xml_files/M000010263.xml
simulation:
  enabled: true
  uncertainty_nm: 0.25
history:
  enabled: true
  path: /tmp/lltf-test.db
mqtt:
  enabled: true
  broker:
    host: broker.lab.local
    port: 8883
    tls: true
  qos: 2
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Descriptor.Path != "xml_files/M000010263.xml" {
		t.Errorf("Descriptor.Path = %q", cfg.Descriptor.Path)
	}
	if !cfg.Simulation.Enabled {
		t.Error("Simulation.Enabled = false, want true")
	}
	if cfg.Simulation.UncertaintyNm != 0.25 {
		t.Errorf("Simulation.UncertaintyNm = %g, want 0.25", cfg.Simulation.UncertaintyNm)
	}
	if cfg.MQTT.Broker.Host != "broker.lab.local" {
		t.Errorf("MQTT.Broker.Host = %q", cfg.MQTT.Broker.Host)
	}
	if !cfg.MQTT.Broker.TLS {
		t.Error("MQTT.Broker.TLS = false, want true")
	}
	if cfg.MQTT.QoS != 2 {
		t.Errorf("MQTT.QoS = %d, want 2", cfg.MQTT.QoS)
	}

	// Unset keys keep their defaults.
	if cfg.MQTT.Broker.ClientID != "lltf-core" {
		t.Errorf("MQTT.Broker.ClientID = %q, want default", cfg.MQTT.Broker.ClientID)
	}
	if cfg.InfluxDB.URL != "http://localhost:8086" {
		t.Errorf("InfluxDB.URL = %q, want default", cfg.InfluxDB.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file succeeded, want error")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "descriptor: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML succeeded, want error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LLTF_DESCRIPTOR_PATH", "/etc/lltf/device.xml")
	t.Setenv("LLTF_SIMULATION_ENABLED", "true")
	t.Setenv("LLTF_SIMULATION_UNCERTAINTY_NM", "0.5")
	t.Setenv("LLTF_MQTT_HOST", "env-broker")
	t.Setenv("LLTF_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("LLTF_LOG_LEVEL", "warn")

	path := writeConfig(t, `
descriptor:
  path: xml_files/file.xml
logging:
  level: info
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Descriptor.Path != "/etc/lltf/device.xml" {
		t.Errorf("Descriptor.Path = %q, want env override", cfg.Descriptor.Path)
	}
	if !cfg.Simulation.Enabled {
		t.Error("Simulation.Enabled = false, want env override true")
	}
	if cfg.Simulation.UncertaintyNm != 0.5 {
		t.Errorf("Simulation.UncertaintyNm = %g, want 0.5", cfg.Simulation.UncertaintyNm)
	}
	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT.Broker.Host = %q, want env override", cfg.MQTT.Broker.Host)
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want env override", cfg.InfluxDB.Token)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "no descriptor location",
			mutate: func(c *Config) {
				c.Descriptor.Path = ""
				c.Descriptor.Dir = ""
			},
			wantErr: "descriptor.path or descriptor.dir",
		},
		{
			name: "negative uncertainty",
			mutate: func(c *Config) {
				c.Simulation.UncertaintyNm = -0.1
			},
			wantErr: "uncertainty_nm",
		},
		{
			name: "history enabled without path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			wantErr: "history.path",
		},
		{
			name: "invalid qos",
			mutate: func(c *Config) {
				c.MQTT.QoS = 3
			},
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt enabled without host",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Broker.Host = ""
			},
			wantErr: "mqtt.broker.host",
		},
		{
			name: "influxdb enabled without org",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.Org = ""
			},
			wantErr: "influxdb.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, missing %q", err, tt.wantErr)
			}
		})
	}
}
