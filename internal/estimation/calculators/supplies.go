package calculators

import (
	"github.com/smartstow/move-planner/internal/estimation"
)

// Compile-time assertion that Supplies implements the Calculator interface.
var _ estimation.Calculator = (*Supplies)(nil)

// Supplies sizes the specialty supplies: wardrobe boxes and vacuum bags. They are point estimates.
type Supplies struct {
	wardrobeBoxesPerOccupant float64
	vacuumBagsPerBedroom     float64
}

// SuppliesOption is a functional option for configuring a Supplies calculator.
type SuppliesOption func(*Supplies)

// WithWardrobeBoxesPerOccupant sets the wardrobe boxes needed per occupant at average density.
// Non-positive values are ignored and the table value is kept.
func WithWardrobeBoxesPerOccupant(ratio float64) SuppliesOption {
	return func(s *Supplies) {
		if ratio > 0 {
			s.wardrobeBoxesPerOccupant = ratio
		}
	}
}

// WithVacuumBagsPerBedroom sets the vacuum bags needed per bedroom.
// Non-positive values are ignored and the table value is kept.
func WithVacuumBagsPerBedroom(ratio float64) SuppliesOption {
	return func(s *Supplies) {
		if ratio > 0 {
			s.vacuumBagsPerBedroom = ratio
		}
	}
}

// NewSupplies creates a Supplies calculator that uses the table coefficients unless overridden.
func NewSupplies(opts ...SuppliesOption) *Supplies {
	res := Supplies{}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Supplies) Name() string { return "Specialty Supplies" }

// Calculate needs the bedroom count and density multiplier resolved by Volume.
func (c *Supplies) Calculate(w *estimation.Worksheet) error {
	coeff := w.Table.Coefficients.Supplies
	wardrobeRatio := coeff.WardrobeBoxesPerOccupant
	if c.wardrobeBoxesPerOccupant > 0 {
		wardrobeRatio = c.wardrobeBoxesPerOccupant
	}
	bagsPerBedroom := coeff.VacuumBagsPerBedroom
	if c.vacuumBagsPerBedroom > 0 {
		bagsPerBedroom = c.vacuumBagsPerBedroom
	}

	occupants := float64(w.Snapshot.Home.Occupants)
	wardrobe := ceilEps(occupants * wardrobeRatio * w.Density)
	bags := ceilEps(float64(w.Bedrooms)*bagsPerBedroom + occupants*coeff.VacuumBagsPerOccupant)

	w.Result.WardrobeBoxes = wardrobe
	w.Result.VacuumBags = bags
	w.Result.SupplyVolume = float64(wardrobe)*coeff.WardrobeBoxVolume + float64(bags)*coeff.VacuumBagVolume
	return nil
}
