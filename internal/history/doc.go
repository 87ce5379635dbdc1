// Package history keeps a local audit trail of wavelength moves.
//
// Every successful SetWavelength is recorded as a Move row in SQLite:
// which system moved, to what wavelength, on which grating, and whether
// the session was simulated. This gives a measurement run a durable
// local record even when no time-series database is configured.
//
// The package plugs into the controller through the Sink adapter:
//
//	repo, err := history.NewSQLiteRepository(db)
//	if err != nil { ... }
//	ctrl.AddMoveSink(history.NewSink(repo, history.SourceCLI))
package history
