package telemetry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evanbray/lltf-core/internal/filter"
	"github.com/evanbray/lltf-core/internal/infrastructure/mqtt"
)

// Logger defines the logging interface used by the Publisher.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// StatePublisher publishes retained state payloads.
// Implemented by the infrastructure mqtt.Client.
type StatePublisher interface {
	PublishRetained(topic string, payload []byte) error
}

// MetricWriter records wavelength metrics.
// Implemented by the infrastructure influxdb.Client.
type MetricWriter interface {
	WriteWavelength(systemName string, nm float64, grating int)
}

// Publisher fans wavelength moves out to MQTT and InfluxDB.
//
// Either sink may be nil when that integration is disabled. Failures are
// logged and never propagated: telemetry must not break device control.
type Publisher struct {
	state   StatePublisher
	metrics MetricWriter
	logger  Logger
}

// New creates a telemetry publisher. Pass nil for disabled sinks.
func New(state StatePublisher, metrics MetricWriter) *Publisher {
	return &Publisher{
		state:   state,
		metrics: metrics,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the publisher.
func (p *Publisher) SetLogger(logger Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// RecordMove implements filter.MoveSink.
//
// The MQTT payload mirrors filter.Move's JSON form and is published
// retained, so late subscribers immediately see the current wavelength.
func (p *Publisher) RecordMove(_ context.Context, move filter.Move) error {
	if p.state != nil {
		payload, err := json.Marshal(move)
		if err != nil {
			p.logger.Warn("encoding move payload", "error", err)
		} else {
			topic := mqtt.Topics{}.WavelengthState(move.SystemName)
			if err := p.state.PublishRetained(topic, payload); err != nil {
				p.logger.Warn("publishing wavelength state",
					"topic", topic,
					"error", err,
				)
			}
		}
	}

	if p.metrics != nil {
		p.metrics.WriteWavelength(move.SystemName, move.WavelengthNm, move.Grating)
	}

	return nil
}

// String describes the enabled sinks, for startup logging.
func (p *Publisher) String() string {
	return fmt.Sprintf("telemetry(mqtt=%t influxdb=%t)", p.state != nil, p.metrics != nil)
}
