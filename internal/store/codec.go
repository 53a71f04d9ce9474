package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// VersionedRecord carries the versions a record was written with.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

func EncodeRun(r Run) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return Run{}, err
	}
	size := 1
	for _, n := range run.Shape {
		size *= n
	}
	if len(run.Shape) == 0 || size != len(run.Spectrum) {
		return Run{}, fmt.Errorf("run %s: spectrum length %d does not match shape %v", run.ID, len(run.Spectrum), run.Shape)
	}
	return run, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}
