package calculators

import (
	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/reference"
)

// Compile-time assertion that Volume implements the Calculator interface.
var _ estimation.Calculator = (*Volume)(nil)

// Volume computes the boxable and furniture-class volume of the household.
type Volume struct {
	boxableFractions map[reference.HobbyID]float64
}

// VolumeOption is a functional option for configuring a Volume calculator.
type VolumeOption func(*Volume)

// WithBoxableFraction overrides the share of a hobby's gear that goes into boxes.
// Values outside [0,1] are ignored and the table value is kept.
func WithBoxableFraction(hobby reference.HobbyID, fraction float64) VolumeOption {
	return func(v *Volume) {
		if fraction >= 0 && fraction <= 1 {
			v.boxableFractions[hobby] = fraction
		}
	}
}

// NewVolume creates a Volume calculator that uses the table coefficients unless overridden.
func NewVolume(opts ...VolumeOption) *Volume {
	res := Volume{
		boxableFractions: map[reference.HobbyID]float64{},
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Volume) Name() string { return "Volume" }

// Calculate fills in base, hobby and furniture volumes and the house piece count.
//
// Base content is always boxable. Hobby gear splits by its boxable fraction, the rest joins the furniture.
func (c *Volume) Calculate(w *estimation.Worksheet) error {
	home := w.Snapshot.Home
	tier, err := w.Table.HomeTier(home.Tier)
	if err != nil {
		return err
	}
	density, err := w.Table.Density(home.Density)
	if err != nil {
		return err
	}
	w.BaseVolume = tier.BaseVolume * density
	w.Bedrooms = tier.Bedrooms
	w.Density = density

	// keys are sorted so the float sums are identical from one run to the next
	for _, id := range sortedKeys(w.Snapshot.Hobbies) {
		volume, fraction, err := w.Table.HobbyVolume(id, w.Snapshot.Hobbies[id])
		if err != nil {
			return err
		}
		if override, ok := c.boxableFractions[id]; ok {
			fraction = override
		}
		w.HobbyBoxable += volume * fraction
		w.HobbyFurniture += volume * (1 - fraction)
	}

	pieces := 0
	for _, piece := range sortedKeys(w.Snapshot.Furniture) {
		unit, err := w.Table.PieceVolume(piece)
		if err != nil {
			return err
		}
		count := w.Snapshot.Furniture[piece]
		w.HouseFurniture += float64(count) * unit
		pieces += count
	}

	w.Result.BoxableVolume = w.BaseVolume + w.HobbyBoxable
	w.Result.FurnitureVolume = w.HouseFurniture + w.HobbyFurniture
	w.Result.TotalVolume = w.Result.BoxableVolume + w.Result.FurnitureVolume
	w.Result.HousePieces = pieces
	return nil
}
