package history

import (
	"context"

	"github.com/evanbray/lltf-core/internal/filter"
)

// Sink adapts a Repository to the controller's MoveSink interface,
// stamping each recorded move with a fixed source label.
type Sink struct {
	repo   Repository
	source string
}

// NewSink creates a controller move sink backed by the repository.
func NewSink(repo Repository, source string) *Sink {
	if source == "" {
		source = SourceLibrary
	}
	return &Sink{repo: repo, source: source}
}

// RecordMove implements filter.MoveSink.
func (s *Sink) RecordMove(ctx context.Context, move filter.Move) error {
	return s.repo.Record(ctx, Move{
		SystemName:   move.SystemName,
		WavelengthNm: move.WavelengthNm,
		Grating:      move.Grating,
		Simulated:    move.Simulated,
		Source:       s.source,
	})
}
