package calculators

import (
	"math"

	"github.com/smartstow/move-planner/internal/estimation"
)

// Compile-time assertion that Boxes implements the Calculator interface.
var _ estimation.Calculator = (*Boxes)(nil)

// Boxes counts standard boxes, splits them by size class and derives the item count.
type Boxes struct {
	unitBoxVolume  float64
	itemsPerBoxMin float64
	itemsPerBoxMax float64
}

// BoxesOption is a functional option for configuring a Boxes calculator.
type BoxesOption func(*Boxes)

// WithUnitBoxVolume sets the average volume of one packed box in cubic feet.
// Non-positive values are ignored and the table value is kept.
func WithUnitBoxVolume(volume float64) BoxesOption {
	return func(b *Boxes) {
		if volume > 0 {
			b.unitBoxVolume = volume
		}
	}
}

// WithItemsPerBox sets the item density used for the low and high box counts.
// The pair is ignored unless 0 < min <= max.
func WithItemsPerBox(min, max float64) BoxesOption {
	return func(b *Boxes) {
		if min > 0 && min <= max {
			b.itemsPerBoxMin = min
			b.itemsPerBoxMax = max
		}
	}
}

// NewBoxes creates a Boxes calculator that uses the table coefficients unless overridden.
func NewBoxes(opts ...BoxesOption) *Boxes {
	res := Boxes{}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Boxes) Name() string { return "Boxes" }

// Calculate bands the boxable volume with the variance chosen by TruckSizing. The low box count pairs with
// the low items-per-box figure and the high count with the high one, so the item range only widens.
func (c *Boxes) Calculate(w *estimation.Worksheet) error {
	coeff := w.Table.Coefficients
	unit := coeff.UnitBoxVolume
	if c.unitBoxVolume > 0 {
		unit = c.unitBoxVolume
	}
	perBoxMin, perBoxMax := coeff.ItemsPerBox.Min, coeff.ItemsPerBox.Max
	if c.itemsPerBoxMin > 0 {
		perBoxMin, perBoxMax = c.itemsPerBoxMin, c.itemsPerBoxMax
	}

	boxable := w.Result.BoxableVolume
	boxes := estimation.CountRange{
		Min: ceilEps(boxable * (1 - w.Variance) / unit),
		Max: ceilEps(boxable * (1 + w.Variance) / unit),
	}
	w.Result.Boxes = boxes
	w.Result.Items = estimation.CountRange{
		Min: int(math.Round(float64(boxes.Min) * perBoxMin)),
		Max: int(math.Round(float64(boxes.Max) * perBoxMax)),
	}

	split := coeff.BoxSplit
	smallMin, mediumMin, largeMin := splitBoxes(boxes.Min, split.Small, split.Medium)
	smallMax, mediumMax, largeMax := splitBoxes(boxes.Max, split.Small, split.Medium)
	w.Result.SmallBoxes = estimation.CountRange{Min: smallMin, Max: smallMax}
	w.Result.MediumBoxes = estimation.CountRange{Min: mediumMin, Max: mediumMax}
	w.Result.LargeBoxes = estimation.CountRange{Min: largeMin, Max: largeMax}
	return nil
}

// splitBoxes rounds the small and medium shares and gives the remainder to large boxes.
func splitBoxes(total int, smallShare, mediumShare float64) (small, medium, large int) {
	small = min(int(math.Round(float64(total)*smallShare)), total)
	medium = min(int(math.Round(float64(total)*mediumShare)), total-small)
	return small, medium, total - small - medium
}
