package reference

import (
	"math"
)

// Table is one complete, versioned set of estimation coefficients.
//
// A Table must not be modified once it has been registered: estimates running concurrently read it
// without locking.
type Table struct {
	Version     string `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	HomeTiers map[HomeTier]HomeTierSpec `json:"homeTiers"`
	Densities map[DensityTier]float64   `json:"densities"`
	Hobbies   map[HobbyID]HobbySpec     `json:"hobbies"`
	Furniture map[PieceType]float64     `json:"furniture"`

	Coefficients Coefficients `json:"coefficients"`
	Trucks       TruckTable   `json:"trucks"`
	Plans        PlanTable    `json:"plans"`
}

// HomeTierSpec holds the per-tier base content volume (cubic feet, always boxable), the bedroom count
// used for vacuum bag sizing, and the furniture a home of that size usually has.
type HomeTierSpec struct {
	BaseVolume       float64           `json:"baseVolume"`
	Bedrooms         int               `json:"bedrooms"`
	DefaultFurniture map[PieceType]int `json:"defaultFurniture"`
}

// HobbySpec holds the gear volume per intensity and the share of that volume that fits in boxes.
type HobbySpec struct {
	Name            string                `json:"name"`
	BoxableFraction float64               `json:"boxableFraction"`
	Levels          map[Intensity]float64 `json:"levels"`
}

// Coefficients are the engine constants calibrated together with the truck and plan thresholds.
type Coefficients struct {
	// Variance is the symmetric uncertainty applied to the possessions volume (0.10 = ±10%).
	Variance          float64             `json:"variance"`
	PackingEfficiency PackingEfficiency   `json:"packingEfficiency"`
	UnitBoxVolume     float64             `json:"unitBoxVolume"`
	BoxSplit          BoxSplit            `json:"boxSplit"`
	ItemsPerBox       ItemsPerBox         `json:"itemsPerBox"`
	Supplies          SupplyCoefficients  `json:"supplies"`
	PackingSpeed      PackingSpeed        `json:"packingSpeed"`
	Loading           LoadingCoefficients `json:"loading"`

	// HobbyPieceVolume is the assumed volume of one unboxed hobby item (bike, amp, kayak).
	HobbyPieceVolume        float64 `json:"hobbyPieceVolume"`
	BenchmarkSecondsPerItem float64 `json:"benchmarkSecondsPerItem"`
	WeightPerCubicFoot      float64 `json:"weightPerCubicFoot"`
}

// PackingEfficiency is the fraction of truck space actually filled. Best shrinks the required space,
// Worst inflates it.
type PackingEfficiency struct {
	Best  float64 `json:"best"`
	Worst float64 `json:"worst"`
}

// BoxSplit is the share of boxes in the small and medium size classes. Large boxes take the remainder.
type BoxSplit struct {
	Small  float64 `json:"small"`
	Medium float64 `json:"medium"`
}

// ItemsPerBox bounds how many items one box holds.
type ItemsPerBox struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SupplyCoefficients size the specialty supplies. Their volume is added to the truck load unvaried.
type SupplyCoefficients struct {
	WardrobeBoxesPerOccupant float64 `json:"wardrobeBoxesPerOccupant"`
	WardrobeBoxVolume        float64 `json:"wardrobeBoxVolume"`
	VacuumBagsPerBedroom     float64 `json:"vacuumBagsPerBedroom"`
	VacuumBagsPerOccupant    float64 `json:"vacuumBagsPerOccupant"`
	VacuumBagVolume          float64 `json:"vacuumBagVolume"`
	VacuumBagHours           float64 `json:"vacuumBagHours"`
}

// PackingSpeed is boxes packed per hour.
type PackingSpeed struct {
	Fast float64 `json:"fast"`
	Slow float64 `json:"slow"`
}

// LoadingCoefficients are person-hours per box and per furniture piece, for the optimistic (Min) and
// pessimistic (Max) bound.
type LoadingCoefficients struct {
	BoxHoursMin   float64 `json:"boxHoursMin"`
	BoxHoursMax   float64 `json:"boxHoursMax"`
	PieceHoursMin float64 `json:"pieceHoursMin"`
	PieceHoursMax float64 `json:"pieceHoursMax"`
}

// TruckTable maps required space (cubic feet) to a vehicle class.
type TruckTable struct {
	// Classes are ordered by ascending MaxSpace.
	Classes  []TruckClassSpec `json:"classes"`
	Overflow TruckClassSpec   `json:"overflow"`

	// SingleVehicleCeiling is the largest load one vehicle can take. Above it the estimate carries Warning.
	SingleVehicleCeiling float64 `json:"singleVehicleCeiling"`
	Warning              string  `json:"warning"`
}

// TruckClassSpec names a truck class and the usable space it holds. Overflow leaves MaxSpace unset.
type TruckClassSpec struct {
	Name     string  `json:"name"`
	MaxSpace float64 `json:"maxSpace,omitempty"`
}

// PlanTable is a step function over the maximum item count.
type PlanTable struct {
	Base PlanTier `json:"base"`

	// Upgrades are ordered by ascending Above.
	Upgrades []PlanTier `json:"upgrades"`
}

// PlanTier is one step of the plan recommendation.
type PlanTier struct {
	Name string `json:"name"`

	// Above is the item count the maximum estimate must exceed for this tier to apply.
	Above   int    `json:"above,omitempty"`
	Message string `json:"message"`
}

// TruckClass is the outcome of classifying one required-space value.
type TruckClass struct {
	// Rank is the position in TruckTable.Classes; the overflow class ranks after the last class.
	Rank     int
	Name     string
	Overflow bool
}

// HomeTier returns the spec for tier.
func (t *Table) HomeTier(tier HomeTier) (HomeTierSpec, error) {
	spec, ok := t.HomeTiers[tier]
	if !ok {
		return HomeTierSpec{}, NewErrMissingKey(t.Version, "home tier", tier)
	}
	return spec, nil
}

// Density returns the possessions multiplier for density.
func (t *Table) Density(density DensityTier) (float64, error) {
	m, ok := t.Densities[density]
	if !ok {
		return 0, NewErrMissingKey(t.Version, "density tier", density)
	}
	return m, nil
}

// HobbyVolume returns the total gear volume and its boxable fraction for a hobby at a level.
// IntensityNone always resolves to zero volume.
func (t *Table) HobbyVolume(hobby HobbyID, level Intensity) (volume float64, boxableFraction float64, err error) {
	spec, ok := t.Hobbies[hobby]
	if !ok {
		return 0, 0, NewErrMissingKey(t.Version, "hobby", hobby)
	}
	if level == IntensityNone {
		return 0, spec.BoxableFraction, nil
	}
	v, ok := spec.Levels[level]
	if !ok {
		return 0, 0, NewErrMissingKey(t.Version, "intensity for hobby "+string(hobby), level)
	}
	return v, spec.BoxableFraction, nil
}

// PieceVolume returns the unit volume of a furniture piece.
func (t *Table) PieceVolume(piece PieceType) (float64, error) {
	v, ok := t.Furniture[piece]
	if !ok {
		return 0, NewErrMissingKey(t.Version, "furniture piece", piece)
	}
	return v, nil
}

// DefaultFurniture returns a copy of the usual furniture for a home tier.
func (t *Table) DefaultFurniture(tier HomeTier) (map[PieceType]int, error) {
	spec, err := t.HomeTier(tier)
	if err != nil {
		return nil, err
	}
	res := make(map[PieceType]int, len(spec.DefaultFurniture))
	for piece, count := range spec.DefaultFurniture {
		res[piece] = count
	}
	return res, nil
}

// ClassifyTruck maps a required space to a truck class. A value at or below a class breakpoint belongs
// to that class; values above the largest breakpoint map to the overflow class.
func (t *Table) ClassifyTruck(space float64) TruckClass {
	for i, class := range t.Trucks.Classes {
		if space <= class.MaxSpace {
			return TruckClass{Rank: i, Name: class.Name}
		}
	}
	return TruckClass{Rank: len(t.Trucks.Classes), Name: t.Trucks.Overflow.Name, Overflow: true}
}

// ExceedsSingleVehicle reports whether the required space is more than one vehicle can carry.
func (t *Table) ExceedsSingleVehicle(space float64) bool {
	return space > t.Trucks.SingleVehicleCeiling
}

// RecommendPlan returns the highest plan tier whose threshold the item count exceeds.
func (t *Table) RecommendPlan(items int) PlanTier {
	tier := t.Plans.Base
	for _, upgrade := range t.Plans.Upgrades {
		if items > upgrade.Above {
			tier = upgrade
		}
	}
	return tier
}

// Validate checks the table is complete and internally consistent.
func (t *Table) Validate() error {
	if t.Version == "" {
		return NewErrConfiguration("reference table has no version")
	}
	for _, tier := range HomeTiers {
		spec, ok := t.HomeTiers[tier]
		if !ok {
			return NewErrMissingKey(t.Version, "home tier", tier)
		}
		if !positive(spec.BaseVolume) || spec.Bedrooms < 0 {
			return NewErrConfiguration("reference table %s: home tier %q has invalid base volume or bedrooms", t.Version, tier)
		}
		for piece, count := range spec.DefaultFurniture {
			if _, ok := t.Furniture[piece]; !ok || count < 0 {
				return NewErrConfiguration("reference table %s: home tier %q has invalid default furniture %q", t.Version, tier, piece)
			}
		}
	}
	for _, density := range DensityTiers {
		m, ok := t.Densities[density]
		if !ok {
			return NewErrMissingKey(t.Version, "density tier", density)
		}
		if !positive(m) {
			return NewErrConfiguration("reference table %s: density %q must be positive", t.Version, density)
		}
	}
	for _, hobby := range Hobbies {
		if err := t.validateHobby(hobby); err != nil {
			return err
		}
	}
	for _, piece := range PieceTypes {
		v, ok := t.Furniture[piece]
		if !ok {
			return NewErrMissingKey(t.Version, "furniture piece", piece)
		}
		if v < 0 || !finite(v) {
			return NewErrConfiguration("reference table %s: furniture %q has invalid volume", t.Version, piece)
		}
	}
	if err := t.validateCoefficients(); err != nil {
		return err
	}
	if err := t.validateTrucks(); err != nil {
		return err
	}
	return t.validatePlans()
}

func (t *Table) validateHobby(hobby HobbyID) error {
	spec, ok := t.Hobbies[hobby]
	if !ok {
		return NewErrMissingKey(t.Version, "hobby", hobby)
	}
	if spec.BoxableFraction < 0 || spec.BoxableFraction > 1 || !finite(spec.BoxableFraction) {
		return NewErrConfiguration("reference table %s: hobby %q boxable fraction must be within [0,1]", t.Version, hobby)
	}
	prev := 0.0
	for _, level := range ActiveIntensities {
		v, ok := spec.Levels[level]
		if !ok {
			return NewErrMissingKey(t.Version, "intensity for hobby "+string(hobby), level)
		}
		if v < prev || !finite(v) {
			return NewErrConfiguration("reference table %s: hobby %q volumes must not decrease with intensity", t.Version, hobby)
		}
		prev = v
	}
	return nil
}

func (t *Table) validateCoefficients() error {
	c := t.Coefficients
	switch {
	case c.Variance < 0 || c.Variance >= 1:
		return NewErrConfiguration("reference table %s: variance must be within [0,1)", t.Version)
	case !positive(c.PackingEfficiency.Best) || !positive(c.PackingEfficiency.Worst) ||
		c.PackingEfficiency.Best > 1 || c.PackingEfficiency.Worst > c.PackingEfficiency.Best:
		return NewErrConfiguration("reference table %s: packing efficiency must satisfy 0 < worst <= best <= 1", t.Version)
	case !positive(c.UnitBoxVolume):
		return NewErrConfiguration("reference table %s: unit box volume must be positive", t.Version)
	case c.BoxSplit.Small < 0 || c.BoxSplit.Medium < 0 || c.BoxSplit.Small+c.BoxSplit.Medium > 1:
		return NewErrConfiguration("reference table %s: box split shares must be non-negative and sum to at most 1", t.Version)
	case !positive(c.ItemsPerBox.Min) || c.ItemsPerBox.Min > c.ItemsPerBox.Max:
		return NewErrConfiguration("reference table %s: items per box must satisfy 0 < min <= max", t.Version)
	case !positive(c.PackingSpeed.Fast) || !positive(c.PackingSpeed.Slow) || c.PackingSpeed.Slow > c.PackingSpeed.Fast:
		return NewErrConfiguration("reference table %s: packing speed must satisfy 0 < slow <= fast", t.Version)
	case c.Loading.BoxHoursMin < 0 || c.Loading.BoxHoursMin > c.Loading.BoxHoursMax ||
		c.Loading.PieceHoursMin < 0 || c.Loading.PieceHoursMin > c.Loading.PieceHoursMax:
		return NewErrConfiguration("reference table %s: loading coefficients must satisfy 0 <= min <= max", t.Version)
	case !positive(c.HobbyPieceVolume):
		return NewErrConfiguration("reference table %s: hobby piece volume must be positive", t.Version)
	case c.BenchmarkSecondsPerItem < 0 || c.WeightPerCubicFoot < 0:
		return NewErrConfiguration("reference table %s: benchmark and weight coefficients must be non-negative", t.Version)
	}
	s := c.Supplies
	for _, v := range []float64{s.WardrobeBoxesPerOccupant, s.WardrobeBoxVolume, s.VacuumBagsPerBedroom,
		s.VacuumBagsPerOccupant, s.VacuumBagVolume, s.VacuumBagHours} {
		if v < 0 || !finite(v) {
			return NewErrConfiguration("reference table %s: supply coefficients must be non-negative", t.Version)
		}
	}
	return nil
}

func (t *Table) validateTrucks() error {
	if len(t.Trucks.Classes) == 0 {
		return NewErrConfiguration("reference table %s: no truck classes", t.Version)
	}
	prev := 0.0
	for _, class := range t.Trucks.Classes {
		if class.Name == "" || !(class.MaxSpace > prev) {
			return NewErrConfiguration("reference table %s: truck breakpoints must be named and strictly ascending", t.Version)
		}
		prev = class.MaxSpace
	}
	if t.Trucks.Overflow.Name == "" {
		return NewErrConfiguration("reference table %s: no overflow truck class", t.Version)
	}
	if !positive(t.Trucks.SingleVehicleCeiling) {
		return NewErrConfiguration("reference table %s: single vehicle ceiling must be positive", t.Version)
	}
	return nil
}

func (t *Table) validatePlans() error {
	if t.Plans.Base.Name == "" {
		return NewErrConfiguration("reference table %s: no base plan tier", t.Version)
	}
	prev := -1
	for _, upgrade := range t.Plans.Upgrades {
		if upgrade.Name == "" || upgrade.Above <= prev {
			return NewErrConfiguration("reference table %s: plan thresholds must be named and strictly ascending", t.Version)
		}
		prev = upgrade.Above
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
