package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// HomeProfile describes the home being moved.
type HomeProfile struct {
	Tier      string `json:"tier" validate:"required,home_tier"`
	Density   string `json:"density" validate:"required,density"`
	Occupants int    `json:"occupants"`
	Helpers   int    `json:"helpers"`
}

// Household is one complete set of estimate inputs.
type Household struct {
	Home *HomeProfile `json:"home" validate:"required"`
	// Hobbies maps a hobby id to its intensity. Omitted hobbies are not pursued.
	Hobbies map[string]string `json:"hobbies,omitempty" validate:"omitempty,dive,keys,hobby,endkeys,intensity"`
	// Furniture maps a piece type to a count. Negative counts are read as zero.
	Furniture map[string]int `json:"furniture,omitempty" validate:"omitempty,dive,keys,piece,endkeys"`
	// UseTierDefaults starts the furniture from the usual pieces of the home tier before Furniture is applied.
	UseTierDefaults bool `json:"useTierDefaults,omitempty"`
}

type EstimateRequest struct {
	Household    *Household `json:"household" validate:"required"`
	TableVersion string     `json:"tableVersion,omitempty"`
}

// ReportRequest carries the inputs of a printable plan. The format is given as a query parameter.
type ReportRequest struct {
	Household     *Household `json:"household" validate:"required"`
	TableVersion  string     `json:"tableVersion,omitempty"`
	Title         string     `json:"title,omitempty" validate:"max=120"`
	IncludeInputs bool       `json:"includeInputs,omitempty"`
}

type SnapshotCreate struct {
	Label        string     `json:"label" validate:"required,snapshot_label,max=255"`
	TableVersion string     `json:"tableVersion,omitempty"`
	Household    *Household `json:"household" validate:"required"`
}

// SnapshotUpdate replaces a stored snapshot as a whole.
type SnapshotUpdate SnapshotCreate

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type VolumeEstimate struct {
	Boxable       float64 `json:"boxable"`
	Furniture     float64 `json:"furniture"`
	Total         float64 `json:"total"`
	Supplies      float64 `json:"supplies"`
	Band          Range   `json:"band"`
	RequiredSpace Range   `json:"requiredSpace"`
	Weight        Range   `json:"weight"`
}

type TruckEstimate struct {
	Classes        []string `json:"classes"`
	Recommendation string   `json:"recommendation"`
	Overflow       bool     `json:"overflow"`
	Warning        *string  `json:"warning,omitempty"`
}

type SuppliesEstimate struct {
	Items         CountRange `json:"items"`
	Boxes         CountRange `json:"boxes"`
	SmallBoxes    CountRange `json:"smallBoxes"`
	MediumBoxes   CountRange `json:"mediumBoxes"`
	LargeBoxes    CountRange `json:"largeBoxes"`
	WardrobeBoxes int        `json:"wardrobeBoxes"`
	VacuumBags    int        `json:"vacuumBags"`
}

type LaborEstimate struct {
	Helpers         int   `json:"helpers"`
	HousePieces     int   `json:"housePieces"`
	HobbyPieces     int   `json:"hobbyPieces"`
	FurniturePieces int   `json:"furniturePieces"`
	PackingHours    Range `json:"packingHours"`
	LoadingHours    Range `json:"loadingHours"`
	TotalHours      Range `json:"totalHours"`
	BenchmarkHours  Range `json:"benchmarkHours"`
}

type PlanRecommendation struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// EstimateDisplay holds the rounded strings shown to people. Ranges whose bounds round to the same value
// are a single number.
type EstimateDisplay struct {
	RequiredSpace   string `json:"requiredSpace"`
	Weight          string `json:"weight"`
	Truck           string `json:"truck"`
	Items           string `json:"items"`
	Boxes           string `json:"boxes"`
	SmallBoxes      string `json:"smallBoxes"`
	MediumBoxes     string `json:"mediumBoxes"`
	LargeBoxes      string `json:"largeBoxes"`
	WardrobeBoxes   string `json:"wardrobeBoxes"`
	VacuumBags      string `json:"vacuumBags"`
	FurniturePieces string `json:"furniturePieces"`
	PackingHours    string `json:"packingHours"`
	LoadingHours    string `json:"loadingHours"`
	TotalHours      string `json:"totalHours"`
	BenchmarkHours  string `json:"benchmarkHours"`
}

type Estimate struct {
	TableVersion string             `json:"tableVersion"`
	Volume       VolumeEstimate     `json:"volume"`
	Truck        TruckEstimate      `json:"truck"`
	Supplies     SuppliesEstimate   `json:"supplies"`
	Labor        LaborEstimate      `json:"labor"`
	Plan         PlanRecommendation `json:"plan"`
	Display      EstimateDisplay    `json:"display"`
}

type Snapshot struct {
	Id           uuid.UUID `json:"id"`
	Label        string    `json:"label"`
	TableVersion string    `json:"tableVersion"`
	Household    Household `json:"household"`
	// Restored is false when the stored record could not be read and Household is the default household.
	Restored     bool      `json:"restored"`
	RestoreError *string   `json:"restoreError,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SnapshotList []Snapshot

// SnapshotEstimate is the estimate of a stored snapshot.
type SnapshotEstimate struct {
	Snapshot Snapshot `json:"snapshot"`
	Estimate Estimate `json:"estimate"`
}

type ReferenceTableSummary struct {
	Version     string  `json:"version"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Default     bool    `json:"default"`
}

type ReferenceTableList []ReferenceTableSummary

type HobbyInfo struct {
	Id              string             `json:"id"`
	Name            string             `json:"name"`
	BoxableFraction float64            `json:"boxableFraction"`
	Levels          map[string]float64 `json:"levels"`
}

type TruckClass struct {
	Name     string   `json:"name"`
	MaxSpace *float64 `json:"maxSpace,omitempty"`
}

// ReferenceTable lists what a client needs to build an input form for a table.
type ReferenceTable struct {
	ReferenceTableSummary
	HomeTiers    []string           `json:"homeTiers"`
	DensityTiers []string           `json:"densityTiers"`
	Intensities  []string           `json:"intensities"`
	Hobbies      []HobbyInfo        `json:"hobbies"`
	Furniture    map[string]float64 `json:"furniture"`
	Trucks       []TruckClass       `json:"trucks"`
}

type Status struct {
	Status string `json:"status"`
}

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}
