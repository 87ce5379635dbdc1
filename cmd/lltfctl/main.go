// lltfctl - command-line control for NKT Photonics LLTF filters
//
// A thin diagnostic CLI over the filter controller: inspect grating
// ranges, set and read the wavelength, and review the local move
// history. Runs against real hardware on Windows or in simulation mode
// anywhere.
//
// Examples:
//
//	lltfctl -xml xml_files/M000010263.xml -ranges
//	lltfctl -simulate -set 632.8
//	lltfctl -simulate -uncertainty 0.1 -set 600 -history 10
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/evanbray/lltf-core/internal/descriptor"
	"github.com/evanbray/lltf-core/internal/filter"
	"github.com/evanbray/lltf-core/internal/history"
	"github.com/evanbray/lltf-core/internal/infrastructure/config"
	"github.com/evanbray/lltf-core/internal/infrastructure/database"
	"github.com/evanbray/lltf-core/internal/infrastructure/influxdb"
	"github.com/evanbray/lltf-core/internal/infrastructure/logging"
	"github.com/evanbray/lltf-core/internal/infrastructure/mqtt"
	"github.com/evanbray/lltf-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// options collects the parsed command-line flags.
type options struct {
	configPath  string
	xmlPath     string
	simulate    bool
	uncertainty float64
	setNm       float64
	setGiven    bool
	grating     int
	showRanges  bool
	showCount   bool
	historyN    int
}

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for clean teardown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Use default logger until config is loaded
	log := logging.Default()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Flag overrides
	if opts.xmlPath != "" {
		cfg.Descriptor.Path = opts.xmlPath
	}
	if opts.simulate {
		cfg.Simulation.Enabled = true
	}
	if opts.uncertainty > 0 {
		cfg.Simulation.UncertaintyNm = opts.uncertainty
	}

	// Load the device description
	loader := descriptor.NewLoader()
	loader.SetLogger(log.With("component", "descriptor"))

	var desc *descriptor.Description
	if cfg.Descriptor.Path != "" {
		desc, err = loader.Load(cfg.Descriptor.Path)
	} else {
		desc, err = loader.LoadDir(cfg.Descriptor.Dir)
	}
	if err != nil {
		return fmt.Errorf("loading device description: %w", err)
	}

	ctrl := filter.New(desc)
	ctrl.SetLogger(log.With("component", "filter"))

	if opts.showRanges {
		printRanges(ctrl)
		if !opts.setGiven && opts.historyN == 0 {
			return nil
		}
	}

	// Optional move history store
	var repo *history.SQLiteRepository
	if cfg.History.Enabled {
		db, err := database.Open(database.Config{
			Path:        cfg.History.Path,
			WALMode:     cfg.History.WALMode,
			BusyTimeout: cfg.History.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("closing history database", "error", err)
			}
		}()

		repo, err = history.NewSQLiteRepository(db)
		if err != nil {
			return fmt.Errorf("preparing history store: %w", err)
		}
		ctrl.AddMoveSink(history.NewSink(repo, history.SourceCLI))
	}

	// Optional telemetry sinks
	if cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		pub, cleanup, err := buildTelemetry(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()
		ctrl.AddMoveSink(pub)
		log.Info("telemetry enabled", "sinks", pub.String())
	}

	// Run the device session
	err = ctrl.Session(cfg.Simulation.Enabled, cfg.Simulation.UncertaintyNm, func(c *filter.Controller) error {
		if opts.showCount {
			count, err := c.ConnectedDeviceCount()
			if err != nil {
				return err
			}
			fmt.Printf("Connected devices: %d\n", count)
		}

		nm, err := c.Wavelength()
		if err != nil {
			return err
		}
		fmt.Printf("Current wavelength: %.3f nm\n", nm)

		if !opts.setGiven {
			return nil
		}

		if opts.grating >= 0 {
			err = c.SetWavelengthOnGrating(opts.setNm, opts.grating)
		} else {
			err = c.SetWavelength(opts.setNm)
		}
		if err != nil {
			return err
		}

		measured, err := c.Wavelength()
		if err != nil {
			return err
		}
		fmt.Printf("Set wavelength: %.3f nm\n", opts.setNm)
		fmt.Printf("Measured wavelength: %.3f nm\n", measured)
		return nil
	})
	if err != nil {
		return err
	}

	if opts.historyN > 0 {
		if repo == nil {
			return errors.New("history is disabled in configuration")
		}
		return printHistory(ctx, repo, desc.SystemName, opts.historyN)
	}

	return nil
}

// parseFlags parses the command line into options.
func parseFlags(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("lltfctl", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "path to config.yaml")
	fs.StringVar(&opts.xmlPath, "xml", "", "device description XML (overrides config)")
	fs.BoolVar(&opts.simulate, "simulate", false, "run without hardware")
	fs.Float64Var(&opts.uncertainty, "uncertainty", 0, "simulated measurement uncertainty in nm")
	setNm := fs.Float64("set", 0, "wavelength to set in nm")
	fs.IntVar(&opts.grating, "grating", -1, "explicit grating index (default: auto-select)")
	fs.BoolVar(&opts.showRanges, "ranges", false, "print configured grating ranges")
	fs.BoolVar(&opts.showCount, "count", false, "print connected device count")
	fs.IntVar(&opts.historyN, "history", 0, "print the N most recent moves")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.setNm = *setNm
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "set" {
			opts.setGiven = true
		}
	})

	return opts, nil
}

// loadConfig loads the YAML config, falling back to defaults when the
// default config file is absent (explicit -config paths must exist).
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildTelemetry connects the enabled telemetry sinks and returns the
// publisher plus a cleanup function closing the connections.
func buildTelemetry(cfg *config.Config, log *logging.Logger) (*telemetry.Publisher, func(), error) {
	var (
		mqttClient   *mqtt.Client
		influxClient *influxdb.Client
		err          error
	)

	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to MQTT broker: %w", err)
		}
	}

	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			if mqttClient != nil {
				mqttClient.Close() //nolint:errcheck // Best effort on error path
			}
			return nil, nil, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		influxClient.SetOnError(func(err error) {
			log.Warn("influxdb write failed", "error", err)
		})
	}

	var pub *telemetry.Publisher
	switch {
	case mqttClient != nil && influxClient != nil:
		pub = telemetry.New(mqttClient, influxClient)
	case mqttClient != nil:
		pub = telemetry.New(mqttClient, nil)
	default:
		pub = telemetry.New(nil, influxClient)
	}
	pub.SetLogger(log.With("component", "telemetry"))

	cleanup := func() {
		if influxClient != nil {
			if err := influxClient.Close(); err != nil {
				log.Warn("closing influxdb client", "error", err)
			}
		}
		if mqttClient != nil {
			if err := mqttClient.Close(); err != nil {
				log.Warn("closing mqtt client", "error", err)
			}
		}
	}

	return pub, cleanup, nil
}

// printRanges prints the configured grating ranges.
func printRanges(ctrl *filter.Controller) {
	fmt.Printf("System: %s\n", ctrl.SystemName())
	for _, g := range ctrl.GratingRanges() {
		fmt.Printf("  Grating %d: %s (extended: %s)\n", g.Index, g.Regular, g.Extended)
	}
}

// printHistory prints the most recent recorded moves.
func printHistory(ctx context.Context, repo *history.SQLiteRepository, systemName string, limit int) error {
	moves, err := repo.Recent(ctx, systemName, limit)
	if err != nil {
		return fmt.Errorf("reading move history: %w", err)
	}

	fmt.Printf("Recent moves for %s:\n", systemName)
	for _, m := range moves {
		mode := "hardware"
		if m.Simulated {
			mode = "simulated"
		}
		fmt.Printf("  %s  %.3f nm  grating %d  %s (%s)\n",
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			m.WavelengthNm,
			m.Grating,
			mode,
			m.Source,
		)
	}
	return nil
}
