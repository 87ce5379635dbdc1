package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the LLTF tooling.
// All configuration is loaded from YAML and can be overridden by
// environment variables (LLTF_SECTION_KEY).
//
// The device description itself is a separate vendor XML file (see the
// descriptor package); this config only points at it.
type Config struct {
	Descriptor DescriptorConfig `yaml:"descriptor"`
	Simulation SimulationConfig `yaml:"simulation"`
	History    HistoryConfig    `yaml:"history"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	InfluxDB   InfluxDBConfig   `yaml:"influxdb"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DescriptorConfig locates the device description XML.
type DescriptorConfig struct {
	// Path is the explicit device description file. When empty, Dir is
	// scanned for *.xml candidates instead.
	Path string `yaml:"path"`

	// Dir is the directory scanned when Path is empty.
	Dir string `yaml:"dir"`
}

// SimulationConfig controls hardware-free operation.
type SimulationConfig struct {
	// Enabled runs sessions against the in-memory simulated gateway.
	Enabled bool `yaml:"enabled"`

	// UncertaintyNm is the standard deviation of the fixed per-session
	// measurement offset, in nanometres. Zero means exact readback.
	UncertaintyNm float64 `yaml:"uncertainty_nm"`
}

// HistoryConfig contains the SQLite move-history settings.
type HistoryConfig struct {
	// Enabled records every successful wavelength move.
	Enabled bool `yaml:"enabled"`

	// Path is the filesystem path to the SQLite database file.
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging for better concurrent access.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings for telemetry.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings for telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads, overrides and validates configuration from a YAML file.
//
// Precedence: defaults < YAML file < environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults: descriptor discovery
// in ./xml_files, simulation, history and telemetry all disabled.
func Default() *Config {
	return &Config{
		Descriptor: DescriptorConfig{
			Dir: "xml_files",
		},
		History: HistoryConfig{
			Path:        "./data/lltf.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "lltf-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Bucket:        "lltf",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables follow the pattern LLTF_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	// Descriptor
	if v := os.Getenv("LLTF_DESCRIPTOR_PATH"); v != "" {
		cfg.Descriptor.Path = v
	}
	if v := os.Getenv("LLTF_DESCRIPTOR_DIR"); v != "" {
		cfg.Descriptor.Dir = v
	}

	// Simulation
	if v := os.Getenv("LLTF_SIMULATION_ENABLED"); v != "" {
		cfg.Simulation.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("LLTF_SIMULATION_UNCERTAINTY_NM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.UncertaintyNm = f
		}
	}

	// History
	if v := os.Getenv("LLTF_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}

	// MQTT
	if v := os.Getenv("LLTF_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("LLTF_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("LLTF_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("LLTF_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("LLTF_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("LLTF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.Descriptor.Path == "" && c.Descriptor.Dir == "" {
		errs = append(errs, "descriptor.path or descriptor.dir is required")
	}

	if c.Simulation.UncertaintyNm < 0 {
		errs = append(errs, "simulation.uncertainty_nm must not be negative")
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path is required when history is enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Org == "" {
			errs = append(errs, "influxdb.org is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
