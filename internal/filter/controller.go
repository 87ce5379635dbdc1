package filter

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/evanbray/lltf-core/internal/descriptor"
)

// Logger defines the logging interface used by the Controller.
// This allows different logging implementations to be used.
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

// Move describes one successful wavelength change.
type Move struct {
	// SystemName is the device the move was issued to.
	SystemName string `json:"system"`

	// WavelengthNm is the requested wavelength in nanometres.
	WavelengthNm float64 `json:"wavelength_nm"`

	// Grating is the grating index the move used.
	Grating int `json:"grating"`

	// Simulated is true when the session runs without hardware.
	Simulated bool `json:"simulated"`

	// At is the time the move completed (UTC).
	At time.Time `json:"at"`
}

// MoveSink receives successful wavelength moves. Implementations include
// the SQLite move history and the MQTT/InfluxDB telemetry publisher.
//
// Sink failures are logged by the controller and never propagated: an
// audit or telemetry problem must not break device control.
type MoveSink interface {
	RecordMove(ctx context.Context, move Move) error
}

// Controller owns one LLTF device session: lifecycle (create, open,
// close, destroy), wavelength get/set, and grating auto-selection.
//
// A controller is single-owner, single-threaded state, matching the
// vendor SDK's handle model. It holds at most one open handle; two
// controllers must not share one physical device. No internal locking is
// performed.
//
// Lifecycle: New -> Initialize -> get/set wavelength -> Close. Close is
// idempotent, and a closed controller can be reused with a fresh
// Initialize. Operations on a controller that is not initialized (or
// already closed) fail with ErrNotInitialized.
type Controller struct {
	desc *descriptor.Description

	// gw is the active session gateway; nil when no session is open.
	gw     Gateway
	handle Handle

	// sdkGW overrides the default SDK gateway for non-simulated sessions.
	sdkGW Gateway

	simulate bool
	rng      *rand.Rand

	logger Logger
	sinks  []MoveSink
}

// New creates a controller for the described device. The description is
// read-only; the controller never mutates it.
func New(desc *descriptor.Description) *Controller {
	return &Controller{
		desc:   desc,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the controller.
func (c *Controller) SetLogger(logger Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetGateway overrides the gateway used by non-simulated Initialize
// calls. Intended for tests that stand in for the vendor SDK.
func (c *Controller) SetGateway(gw Gateway) {
	c.sdkGW = gw
}

// SetRand sets the random source used to draw simulation offsets.
// Intended for tests that need deterministic offsets.
func (c *Controller) SetRand(rng *rand.Rand) {
	c.rng = rng
}

// AddMoveSink registers a sink notified after each successful set.
func (c *Controller) AddMoveSink(sink MoveSink) {
	if sink != nil {
		c.sinks = append(c.sinks, sink)
	}
}

// SystemName returns the device identifier from the description.
func (c *Controller) SystemName() string {
	return c.desc.SystemName
}

// Simulated reports whether the current session runs in simulation mode.
// False when no session is open.
func (c *Controller) Simulated() bool {
	return c.gw != nil && c.simulate
}

// GratingRanges returns a defensive copy of the configured grating
// ranges. It never fails and needs no open session.
func (c *Controller) GratingRanges() []descriptor.GratingRange {
	return c.desc.CloneGratings()
}

// Initialize opens a device session.
//
// With simulate false it loads the vendor SDK, creates a resource bound
// to the device description file and opens it by system name; every
// native status code is checked. With simulate true no native resource
// is acquired: an in-memory gateway emulates the device, with a fixed
// measurement offset drawn once from a zero-mean normal distribution
// scaled by uncertaintyNm (zero uncertainty means a zero offset) and a
// baseline wavelength of 550 nm.
//
// Initializing an already-open controller closes the previous session
// first.
func (c *Controller) Initialize(simulate bool, uncertaintyNm float64) error {
	if c.gw != nil {
		c.Close()
	}

	gw, err := c.sessionGateway(simulate, uncertaintyNm)
	if err != nil {
		return err
	}

	handle, st, err := gw.Create(c.desc.Path)
	if err != nil {
		return fmt.Errorf("creating device resource: %w", err)
	}
	if err := checkStatus("PE_Create", st); err != nil {
		return err
	}

	if c.desc.SystemName != "" {
		st, err := gw.Open(handle, c.desc.SystemName)
		if err != nil || !st.OK() {
			// Release the resource created above before reporting failure.
			if _, cerr := gw.Close(handle); cerr != nil {
				c.logger.Warn("close after failed open", "error", cerr)
			}
			if derr := gw.Destroy(handle); derr != nil {
				c.logger.Warn("destroy after failed open", "error", derr)
			}
			if err != nil {
				return fmt.Errorf("opening device %q: %w", c.desc.SystemName, err)
			}
			return checkStatus("PE_Open", st)
		}
	}

	c.gw = gw
	c.handle = handle
	c.simulate = simulate

	c.logger.Info("device session opened",
		"system", c.desc.SystemName,
		"simulate", simulate,
		"uncertainty_nm", uncertaintyNm,
	)
	return nil
}

// sessionGateway picks the gateway implementation for a new session.
func (c *Controller) sessionGateway(simulate bool, uncertaintyNm float64) (Gateway, error) {
	if simulate {
		return NewSimGatewayWithRand(uncertaintyNm, c.rng), nil
	}
	if c.sdkGW != nil {
		return c.sdkGW, nil
	}
	gw, err := NewSDKGateway()
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// ConnectedDeviceCount returns the number of connected filter systems.
// Simulated sessions always report 1.
func (c *Controller) ConnectedDeviceCount() (int, error) {
	if c.gw == nil {
		return 0, ErrNotInitialized
	}
	count, err := c.gw.SystemCount(c.handle)
	if err != nil {
		return 0, fmt.Errorf("querying system count: %w", err)
	}
	return count, nil
}

// Wavelength returns the current central wavelength in nanometres.
func (c *Controller) Wavelength() (float64, error) {
	if c.gw == nil {
		return 0, ErrNotInitialized
	}
	nm, st, err := c.gw.Wavelength(c.handle)
	if err != nil {
		return 0, fmt.Errorf("reading wavelength: %w", err)
	}
	if err := checkStatus("PE_GetWavelength", st); err != nil {
		return 0, err
	}
	return nm, nil
}

// SetWavelength moves the filter to the wavelength, selecting the
// grating automatically (first configured grating whose regular range
// contains the wavelength; extended ranges are a warned fallback).
func (c *Controller) SetWavelength(nm float64) error {
	if c.gw == nil {
		return ErrNotInitialized
	}
	grating, err := c.SelectGrating(nm)
	if err != nil {
		return err
	}
	return c.setOnGrating(nm, grating)
}

// SetWavelengthOnGrating moves the filter using an explicit grating.
// The index must be one of the configured gratings.
func (c *Controller) SetWavelengthOnGrating(nm float64, grating int) error {
	if c.gw == nil {
		return ErrNotInitialized
	}
	if !c.hasGrating(grating) {
		return fmt.Errorf("%w: %d is not a configured grating", ErrInvalidGrating, grating)
	}
	return c.setOnGrating(nm, grating)
}

// setOnGrating issues the native set call and notifies move sinks.
func (c *Controller) setOnGrating(nm float64, grating int) error {
	st, err := c.gw.SetWavelengthOnGrating(c.handle, grating, nm)
	if err != nil {
		return fmt.Errorf("setting wavelength: %w", err)
	}
	if err := checkStatus(fmt.Sprintf("PE_SetWavelengthOnGrating(grating=%d)", grating), st); err != nil {
		return err
	}

	c.logger.Debug("wavelength set",
		"wavelength_nm", nm,
		"grating", grating,
		"simulate", c.simulate,
	)

	c.notifySinks(Move{
		SystemName:   c.desc.SystemName,
		WavelengthNm: nm,
		Grating:      grating,
		Simulated:    c.simulate,
		At:           time.Now().UTC(),
	})
	return nil
}

// hasGrating reports whether the index is one of the configured gratings.
func (c *Controller) hasGrating(index int) bool {
	for _, g := range c.desc.Gratings {
		if g.Index == index {
			return true
		}
	}
	return false
}

// notifySinks delivers a move to every registered sink, best-effort.
func (c *Controller) notifySinks(move Move) {
	for _, sink := range c.sinks {
		if err := sink.RecordMove(context.Background(), move); err != nil {
			c.logger.Warn("move sink failed", "error", err)
		}
	}
}

// Close ends the session and releases the device resource.
//
// It is idempotent and never fails: a failed native close is logged and
// swallowed so teardown can continue, Destroy still runs, and the handle
// is cleared regardless. After Close, device operations return
// ErrNotInitialized until a fresh Initialize.
func (c *Controller) Close() {
	if c.gw == nil {
		return
	}

	if c.handle != 0 {
		if st, err := c.gw.Close(c.handle); err != nil || !st.OK() {
			// Teardown must continue: Destroy still runs below.
			c.logger.Warn("device close failed",
				"status", st.String(),
				"error", err,
			)
		}
		if err := c.gw.Destroy(c.handle); err != nil {
			c.logger.Warn("device destroy failed", "error", err)
		}
	}

	c.handle = 0
	c.gw = nil
	c.simulate = false
	c.logger.Info("device session closed", "system", c.desc.SystemName)
}

// Session runs fn inside an initialized session and guarantees Close on
// every exit path, including panics. It is the scoped-acquisition
// equivalent of a context manager:
//
//	ctrl := filter.New(desc)
//	err := ctrl.Session(true, 0, func(c *filter.Controller) error {
//	    return c.SetWavelength(632.8)
//	})
func (c *Controller) Session(simulate bool, uncertaintyNm float64, fn func(*Controller) error) error {
	if err := c.Initialize(simulate, uncertaintyNm); err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
