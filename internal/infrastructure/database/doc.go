// Package database manages the SQLite connection backing the wavelength
// move history.
//
// It wraps database/sql with the go-sqlite3 driver and applies the
// pragmas this module relies on (busy timeout, foreign keys, optional
// WAL mode). Schema creation is owned by the history package; this
// package only provides the connection lifecycle.
//
// # Usage
//
//	db, err := database.Open(database.Config{
//	    Path:        cfg.History.Path,
//	    WALMode:     cfg.History.WALMode,
//	    BusyTimeout: cfg.History.BusyTimeout,
//	})
//	if err != nil { ... }
//	defer db.Close()
package database
