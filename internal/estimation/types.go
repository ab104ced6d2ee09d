package estimation

import (
	"strings"

	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
)

// Calculator encapsulates one stage of the estimate (e.g. "volume", "truck sizing").
type Calculator interface {
	// Name returns the human-readable name of this calculator, used to label its errors.
	Name() string
	// Calculate reads what earlier stages left on the worksheet and fills in its own fields.
	Calculate(w *Worksheet) error
}

// Range is a [Min, Max] pair of continuous quantities (volumes, hours).
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Scale multiplies both bounds.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}

// Add adds two ranges bound by bound.
func (r Range) Add(o Range) Range {
	return Range{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

// CountRange is a [Min, Max] pair of whole quantities (boxes, items).
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Result is the outcome of one estimate. It is built fresh on every run and never changed afterwards.
type Result struct {
	TableVersion string `json:"tableVersion"`

	// Volumes in cubic feet, before the uncertainty band.
	BoxableVolume   float64 `json:"boxableVolume"`
	FurnitureVolume float64 `json:"furnitureVolume"`
	TotalVolume     float64 `json:"totalVolume"`
	SupplyVolume    float64 `json:"supplyVolume"`

	VolumeBand    Range `json:"volumeBand"`
	RequiredSpace Range `json:"requiredSpace"`
	Weight        Range `json:"weight"`

	// Trucks holds one class, or two classes with the larger one first.
	Trucks        []string `json:"trucks"`
	TruckOverflow bool     `json:"truckOverflow"`
	Warning       string   `json:"warning,omitempty"`

	Items       CountRange `json:"items"`
	Boxes       CountRange `json:"boxes"`
	SmallBoxes  CountRange `json:"smallBoxes"`
	MediumBoxes CountRange `json:"mediumBoxes"`
	LargeBoxes  CountRange `json:"largeBoxes"`

	WardrobeBoxes   int `json:"wardrobeBoxes"`
	VacuumBags      int `json:"vacuumBags"`
	HousePieces     int `json:"housePieces"`
	HobbyPieces     int `json:"hobbyPieces"`
	FurniturePieces int `json:"furniturePieces"`
	Helpers         int `json:"helpers"`

	PackingHours   Range `json:"packingHours"`
	LoadingHours   Range `json:"loadingHours"`
	TotalHours     Range `json:"totalHours"`
	BenchmarkHours Range `json:"benchmarkHours"`

	Plan        string `json:"plan"`
	PlanMessage string `json:"planMessage"`
}

// TruckRecommendation joins the recommended classes with "or".
func (r Result) TruckRecommendation() string {
	return strings.Join(r.Trucks, " or ")
}

// Worksheet is the scratch space shared by the calculators of one run. Calculators read the fields earlier
// stages produced and write their own into it and into Result.
type Worksheet struct {
	// Snapshot is the normalized input. Calculators must not modify it.
	Snapshot household.Snapshot
	// Table is the only reference table consulted during the run.
	Table *reference.Table

	BaseVolume     float64
	HobbyBoxable   float64
	HobbyFurniture float64
	HouseFurniture float64
	Bedrooms       int
	Density        float64

	// Variance is the volume band actually applied by truck sizing; box counts reuse it.
	Variance float64

	Result Result
}

// NewWorksheet starts a run over a normalized copy of the snapshot.
func NewWorksheet(table *reference.Table, snapshot household.Snapshot) *Worksheet {
	return &Worksheet{
		Snapshot: snapshot.Normalize(),
		Table:    table,
		Result: Result{
			TableVersion: table.Version,
		},
	}
}
