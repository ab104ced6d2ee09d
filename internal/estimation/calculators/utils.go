package calculators

import (
	"maps"
	"math"
	"slices"

	"github.com/smartstow/move-planner/internal/estimation"
)

// ceilEps rounds up, ignoring floating point noise just above a whole number (90.00000000000001 -> 90).
func ceilEps(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// NewEngine returns an engine with every calculator registered in pipeline order.
func NewEngine() *estimation.Engine {
	e := estimation.NewEngine()
	RegisterAll(e)
	return e
}

// RegisterAll registers the default calculators in pipeline order. Supplies run before truck sizing
// because their volume is part of the load.
func RegisterAll(e *estimation.Engine) {
	e.Register(NewVolume())
	e.Register(NewSupplies())
	e.Register(NewTruckSizing())
	e.Register(NewBoxes())
	e.Register(NewLabor())
	e.Register(NewBenchmark())
	e.Register(NewPlan())
}
