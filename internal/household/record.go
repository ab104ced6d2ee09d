package household

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/smartstow/move-planner/internal/reference"
)

// SchemaVersion tags every persisted snapshot. A record carrying any other tag is rejected.
const SchemaVersion = "smartstow.snapshot/v1"

// ErrPersistenceFormat is returned when a stored snapshot cannot be read back. The record is discarded
// as a whole; callers fall back to DefaultSnapshot.
type ErrPersistenceFormat struct {
	error
}

func NewErrPersistenceFormat(format string, args ...any) *ErrPersistenceFormat {
	return &ErrPersistenceFormat{fmt.Errorf(format, args...)}
}

// Record is the serialized form of a Snapshot.
type Record struct {
	SchemaVersion string            `json:"schemaVersion" validate:"required"`
	Home          *HomeRecord       `json:"home" validate:"required"`
	Hobbies       map[string]string `json:"hobbies" validate:"required"`
	Furniture     map[string]int    `json:"furniture" validate:"required"`
}

type HomeRecord struct {
	Tier      string `json:"tier" validate:"required"`
	Density   string `json:"density" validate:"required"`
	Occupants *int   `json:"occupants" validate:"required"`
	Helpers   *int   `json:"helpers" validate:"required"`
}

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// NewRecord converts a snapshot into its persisted form. Unselected hobbies are omitted.
func NewRecord(s Snapshot) Record {
	n := s.Normalize()
	occupants, helpers := n.Home.Occupants, n.Home.Helpers
	r := Record{
		SchemaVersion: SchemaVersion,
		Home: &HomeRecord{
			Tier:      string(n.Home.Tier),
			Density:   string(n.Home.Density),
			Occupants: &occupants,
			Helpers:   &helpers,
		},
		Hobbies:   make(map[string]string, len(n.Hobbies)),
		Furniture: make(map[string]int, len(n.Furniture)),
	}
	for id, level := range n.Hobbies {
		r.Hobbies[string(id)] = string(level)
	}
	for piece, count := range n.Furniture {
		r.Furniture[string(piece)] = count
	}
	return r
}

// Snapshot converts the record back into a Snapshot. Nothing is applied unless every field resolves.
func (r Record) Snapshot() (Snapshot, error) {
	if r.SchemaVersion != SchemaVersion {
		return Snapshot{}, NewErrPersistenceFormat("unsupported snapshot schema version %q", r.SchemaVersion)
	}
	if err := recordValidator.Struct(r); err != nil {
		return Snapshot{}, NewErrPersistenceFormat("snapshot record is incomplete: %v", err)
	}

	tier, err := reference.ParseHomeTier(r.Home.Tier)
	if err != nil {
		return Snapshot{}, NewErrPersistenceFormat("snapshot record: %v", err)
	}
	density, err := reference.ParseDensityTier(r.Home.Density)
	if err != nil {
		return Snapshot{}, NewErrPersistenceFormat("snapshot record: %v", err)
	}

	s := NewSnapshot(NewHomeProfile(tier, density, *r.Home.Occupants, *r.Home.Helpers))
	for rawID, rawLevel := range r.Hobbies {
		id, err := reference.ParseHobbyID(rawID)
		if err != nil {
			return Snapshot{}, NewErrPersistenceFormat("snapshot record: %v", err)
		}
		level, err := reference.ParseIntensity(rawLevel)
		if err != nil {
			return Snapshot{}, NewErrPersistenceFormat("snapshot record: %v", err)
		}
		s.SetHobby(id, level)
	}
	for rawPiece, count := range r.Furniture {
		piece, err := reference.ParsePieceType(rawPiece)
		if err != nil {
			return Snapshot{}, NewErrPersistenceFormat("snapshot record: %v", err)
		}
		s.SetPieceCount(piece, count)
	}
	return s, nil
}

// Encode serializes a snapshot to its versioned JSON record.
func Encode(s Snapshot) ([]byte, error) {
	return json.Marshal(NewRecord(s))
}

// Decode parses a versioned JSON record. Unknown fields, unknown schema versions, missing fields and
// unknown enum values all fail with ErrPersistenceFormat.
func Decode(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var r Record
	if err := dec.Decode(&r); err != nil {
		return Snapshot{}, NewErrPersistenceFormat("malformed snapshot record: %v", err)
	}
	if dec.More() {
		return Snapshot{}, NewErrPersistenceFormat("malformed snapshot record: trailing data")
	}
	return r.Snapshot()
}

// Restore decodes a stored record and falls back to DefaultSnapshot when it cannot be read. The decoding
// error is returned alongside the fallback so callers can log it.
func Restore(data []byte) (Snapshot, error) {
	s, err := Decode(data)
	if err != nil {
		return DefaultSnapshot(), err
	}
	return s, nil
}
