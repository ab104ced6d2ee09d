package calculators

import (
	"github.com/smartstow/move-planner/internal/estimation"
)

// Compile-time assertion that TruckSizing implements the Calculator interface.
var _ estimation.Calculator = (*TruckSizing)(nil)

// TruckSizing applies the volume band and packing efficiency, then classifies both bounds into truck classes.
type TruckSizing struct {
	variance        *float64
	bestEfficiency  float64
	worstEfficiency float64
}

// TruckSizingOption is a functional option for configuring a TruckSizing calculator.
type TruckSizingOption func(*TruckSizing)

// WithVariance sets the symmetric volume uncertainty (0.1 = ±10%). Values outside [0,1) are ignored.
func WithVariance(variance float64) TruckSizingOption {
	return func(t *TruckSizing) {
		if variance >= 0 && variance < 1 {
			t.variance = &variance
		}
	}
}

// WithPackingEfficiency sets the best and worst share of truck space actually filled.
// The pair is ignored unless 0 < worst <= best <= 1.
func WithPackingEfficiency(best, worst float64) TruckSizingOption {
	return func(t *TruckSizing) {
		if worst > 0 && worst <= best && best <= 1 {
			t.bestEfficiency = best
			t.worstEfficiency = worst
		}
	}
}

// NewTruckSizing creates a TruckSizing calculator that uses the table coefficients unless overridden.
func NewTruckSizing(opts ...TruckSizingOption) *TruckSizing {
	res := TruckSizing{}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *TruckSizing) Name() string { return "Truck Sizing" }

// Calculate bands the possessions volume, adds the unvaried supply volume, and divides the low bound by the
// best efficiency and the high bound by the worst one. Both required-space bounds are classified on their own;
// when they land in different classes the larger class is listed first.
func (c *TruckSizing) Calculate(w *estimation.Worksheet) error {
	coeff := w.Table.Coefficients
	variance := coeff.Variance
	if c.variance != nil {
		variance = *c.variance
	}
	best, worst := coeff.PackingEfficiency.Best, coeff.PackingEfficiency.Worst
	if c.bestEfficiency > 0 {
		best, worst = c.bestEfficiency, c.worstEfficiency
	}

	possessions := w.Result.BoxableVolume + w.Result.FurnitureVolume
	band := estimation.Range{
		Min: possessions*(1-variance) + w.Result.SupplyVolume,
		Max: possessions*(1+variance) + w.Result.SupplyVolume,
	}
	space := estimation.Range{Min: band.Min / best, Max: band.Max / worst}

	w.Variance = variance
	w.Result.VolumeBand = band
	w.Result.RequiredSpace = space
	w.Result.Weight = space.Scale(coeff.WeightPerCubicFoot)

	low := w.Table.ClassifyTruck(space.Min)
	high := w.Table.ClassifyTruck(space.Max)
	if low.Rank == high.Rank {
		w.Result.Trucks = []string{high.Name}
	} else {
		w.Result.Trucks = []string{high.Name, low.Name}
	}
	w.Result.TruckOverflow = high.Overflow
	if w.Table.ExceedsSingleVehicle(space.Max) {
		w.Result.Warning = w.Table.Trucks.Warning
	}
	return nil
}
