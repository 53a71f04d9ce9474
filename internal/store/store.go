// Package store persists simulated spectra keyed by run ID.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines persistence operations for simulation runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context) ([]RunSummary, error)
}

// Run is one stored simulation result.
type Run struct {
	VersionedRecord
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Method    string    `json:"method"`
	Channel   string    `json:"channel"`
	Systems   int       `json:"systems"`
	Shape     []int     `json:"shape"`
	Spectrum  []float64 `json:"spectrum"`
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	ID        string
	CreatedAt time.Time
	Method    string
	Channel   string
}

// NewRun returns a run with a fresh ID and the current record versions.
func NewRun(method, channel string, systems int, shape []int, spectrum []float64) Run {
	return Run{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Method:          method,
		Channel:         channel,
		Systems:         systems,
		Shape:           append([]int(nil), shape...),
		Spectrum:        append([]float64(nil), spectrum...),
	}
}
