package history

import (
	"context"
	"time"
)

// Move source values.
const (
	// SourceCLI marks moves issued interactively through lltfctl.
	SourceCLI = "cli"

	// SourceLibrary marks moves issued by an embedding application.
	SourceLibrary = "library"
)

// Move represents a single recorded wavelength change.
//
// Each entry stores the requested wavelength and the grating used, so a
// measurement run can be audited afterwards even when no time-series
// database is configured.
type Move struct {
	// ID is the auto-incremented primary key for the history row.
	ID int64 `json:"id"`

	// SystemName is the filter system the move was issued to.
	SystemName string `json:"system"`

	// WavelengthNm is the requested wavelength in nanometres.
	WavelengthNm float64 `json:"wavelength_nm"`

	// Grating is the grating index the move used.
	Grating int `json:"grating"`

	// Simulated is true when the move ran against the simulated gateway.
	Simulated bool `json:"simulated"`

	// Source identifies how the move was issued (cli, library).
	Source string `json:"source"`

	// CreatedAt is the timestamp of the move (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores and retrieves wavelength move history.
//
// Implementations must use UTC timestamps.
type Repository interface {
	// Record persists one move. The ID and CreatedAt fields of the input
	// are ignored; the store assigns them.
	Record(ctx context.Context, move Move) error

	// Recent returns recent moves for the system, ordered newest first.
	// The limit may be clamped by the implementation.
	Recent(ctx context.Context, systemName string, limit int) ([]Move, error)
}
