package calculators

import (
	"github.com/smartstow/move-planner/internal/estimation"
)

// Compile-time assertion that Labor implements the Calculator interface.
var _ estimation.Calculator = (*Labor)(nil)

// Labor forecasts packing and loading hours.
type Labor struct {
	fastSpeed        float64
	slowSpeed        float64
	hobbyPieceVolume float64
}

// LaborOption is a functional option for configuring a Labor calculator.
type LaborOption func(*Labor)

// WithPackingSpeed sets the boxes packed per hour at the fast and slow extremes.
// The pair is ignored unless 0 < slow <= fast.
func WithPackingSpeed(fast, slow float64) LaborOption {
	return func(l *Labor) {
		if slow > 0 && slow <= fast {
			l.fastSpeed = fast
			l.slowSpeed = slow
		}
	}
}

// WithHobbyPieceVolume sets the assumed volume of one unboxed hobby item.
// Non-positive values are ignored and the table value is kept.
func WithHobbyPieceVolume(volume float64) LaborOption {
	return func(l *Labor) {
		if volume > 0 {
			l.hobbyPieceVolume = volume
		}
	}
}

// NewLabor creates a Labor calculator that uses the table coefficients unless overridden.
func NewLabor(opts ...LaborOption) *Labor {
	res := Labor{}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Labor) Name() string { return "Labor" }

// Calculate pairs the low box count with the fast packing speed and the high count with the slow one.
// Loading time is split over the helpers, floored at one so an estimate never divides by zero.
func (c *Labor) Calculate(w *estimation.Worksheet) error {
	coeff := w.Table.Coefficients
	fast, slow := coeff.PackingSpeed.Fast, coeff.PackingSpeed.Slow
	if c.fastSpeed > 0 {
		fast, slow = c.fastSpeed, c.slowSpeed
	}
	pieceVolume := coeff.HobbyPieceVolume
	if c.hobbyPieceVolume > 0 {
		pieceVolume = c.hobbyPieceVolume
	}

	boxes := w.Result.Boxes
	wardrobe := float64(w.Result.WardrobeBoxes)
	bagHours := float64(w.Result.VacuumBags) * coeff.Supplies.VacuumBagHours
	packing := estimation.Range{
		Min: float64(boxes.Min)/fast + wardrobe/fast + bagHours,
		Max: float64(boxes.Max)/slow + wardrobe/slow + bagHours,
	}

	hobbyPieces := ceilEps(w.HobbyFurniture / pieceVolume)
	pieces := float64(w.Result.HousePieces + hobbyPieces)
	helpers := max(w.Snapshot.Home.Helpers, 1)
	loading := estimation.Range{
		Min: (float64(boxes.Min)*coeff.Loading.BoxHoursMin + pieces*coeff.Loading.PieceHoursMin) / float64(helpers),
		Max: (float64(boxes.Max)*coeff.Loading.BoxHoursMax + pieces*coeff.Loading.PieceHoursMax) / float64(helpers),
	}

	w.Result.HobbyPieces = hobbyPieces
	w.Result.FurniturePieces = w.Result.HousePieces + hobbyPieces
	w.Result.Helpers = helpers
	w.Result.PackingHours = packing
	w.Result.LoadingHours = loading
	w.Result.TotalHours = packing.Add(loading)
	return nil
}
