// Package household models the user-declared inputs of a move estimate and their persisted form.
package household

import (
	"github.com/smartstow/move-planner/internal/reference"
)

// HomeProfile describes the home and the people available to move it.
type HomeProfile struct {
	Tier      reference.HomeTier
	Density   reference.DensityTier
	Occupants int
	Helpers   int
}

// HobbySelection maps a hobby to its intensity. A hobby that is absent is the same as IntensityNone.
type HobbySelection map[reference.HobbyID]reference.Intensity

// FurnitureInventory maps a furniture piece type to the number of pieces moved.
type FurnitureInventory map[reference.PieceType]int

// Snapshot is one complete set of inputs for the estimation engine.
//
// The UI layer owns a Snapshot and mutates it between estimates; the engine only reads it.
type Snapshot struct {
	Home      HomeProfile
	Hobbies   HobbySelection
	Furniture FurnitureInventory
}

// NewHomeProfile builds a profile with occupant and helper counts clamped to their minimums.
func NewHomeProfile(tier reference.HomeTier, density reference.DensityTier, occupants, helpers int) HomeProfile {
	return HomeProfile{
		Tier:      tier,
		Density:   density,
		Occupants: ClampOccupants(occupants),
		Helpers:   ClampHelpers(helpers),
	}
}

// NewSnapshot creates a snapshot with no hobbies and no furniture.
func NewSnapshot(home HomeProfile) Snapshot {
	return Snapshot{
		Home:      NewHomeProfile(home.Tier, home.Density, home.Occupants, home.Helpers),
		Hobbies:   HobbySelection{},
		Furniture: FurnitureInventory{},
	}
}

// DefaultSnapshot is the snapshot used when nothing has been declared yet, or when a stored one
// cannot be read: an average two-bedroom home with its usual furniture.
func DefaultSnapshot() Snapshot {
	s := NewSnapshot(NewHomeProfile(reference.Tier2Bed, reference.DensityAverage, 2, 0))
	// the embedded default table always carries 2bed defaults
	_ = s.ApplyTierDefaults(reference.DefaultTable())
	return s
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	res := Snapshot{
		Home:      s.Home,
		Hobbies:   make(HobbySelection, len(s.Hobbies)),
		Furniture: make(FurnitureInventory, len(s.Furniture)),
	}
	for id, level := range s.Hobbies {
		res.Hobbies[id] = level
	}
	for piece, count := range s.Furniture {
		res.Furniture[piece] = count
	}
	return res
}

// Normalize returns a copy with every clamp applied and IntensityNone entries dropped.
func (s Snapshot) Normalize() Snapshot {
	res := s.Clone()
	res.Home = NewHomeProfile(s.Home.Tier, s.Home.Density, s.Home.Occupants, s.Home.Helpers)
	for id, level := range res.Hobbies {
		if level == reference.IntensityNone {
			delete(res.Hobbies, id)
		}
	}
	for piece, count := range res.Furniture {
		res.Furniture[piece] = ClampCount(count)
	}
	return res
}

// Intensity returns the selected level for a hobby, IntensityNone when it is not selected.
func (s Snapshot) Intensity(id reference.HobbyID) reference.Intensity {
	if level, ok := s.Hobbies[id]; ok {
		return level
	}
	return reference.IntensityNone
}

// SetHobby selects a hobby at a level. Selecting IntensityNone removes the hobby.
func (s *Snapshot) SetHobby(id reference.HobbyID, level reference.Intensity) {
	if s.Hobbies == nil {
		s.Hobbies = HobbySelection{}
	}
	if level == reference.IntensityNone {
		delete(s.Hobbies, id)
		return
	}
	s.Hobbies[id] = level
}

// ToggleHobby activates an unselected hobby at IntensityAverage, or deselects a selected one.
func (s *Snapshot) ToggleHobby(id reference.HobbyID) {
	if s.Intensity(id) != reference.IntensityNone {
		s.SetHobby(id, reference.IntensityNone)
		return
	}
	s.SetHobby(id, reference.IntensityAverage)
}

// SetPieceCount sets the count of a furniture piece, clamping negatives to zero.
func (s *Snapshot) SetPieceCount(piece reference.PieceType, count int) {
	if s.Furniture == nil {
		s.Furniture = FurnitureInventory{}
	}
	s.Furniture[piece] = ClampCount(count)
}

// AdjustPiece adds delta to the count of a furniture piece. The count never drops below zero.
func (s *Snapshot) AdjustPiece(piece reference.PieceType, delta int) {
	s.SetPieceCount(piece, s.Furniture[piece]+delta)
}

// ApplyTierDefaults replaces the furniture inventory with the usual furniture of the home tier.
func (s *Snapshot) ApplyTierDefaults(table *reference.Table) error {
	defaults, err := table.DefaultFurniture(s.Home.Tier)
	if err != nil {
		return err
	}
	s.Furniture = FurnitureInventory(defaults)
	return nil
}

// PieceCount returns the total number of house furniture pieces.
func (s Snapshot) PieceCount() int {
	total := 0
	for _, count := range s.Furniture {
		total += ClampCount(count)
	}
	return total
}
