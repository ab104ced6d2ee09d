package estimation

import (
	"fmt"
	"math"
	"strconv"
)

// RangeSeparator sits between the bounds of a displayed range.
const RangeSeparator = " - "

// Display is the pre-rounded view of a Result used by every presentation surface.
// Counts and volumes are whole numbers, hours carry one decimal, and a range whose bounds round to the
// same value is shown as that single value.
type Display struct {
	TableVersion string `json:"tableVersion"`

	BoxableVolume   string `json:"boxableVolume"`
	FurnitureVolume string `json:"furnitureVolume"`
	TotalVolume     string `json:"totalVolume"`
	RequiredSpace   string `json:"requiredSpace"`
	Weight          string `json:"weight"`

	Truck   string `json:"truck"`
	Warning string `json:"warning,omitempty"`

	Items       string `json:"items"`
	Boxes       string `json:"boxes"`
	SmallBoxes  string `json:"smallBoxes"`
	MediumBoxes string `json:"mediumBoxes"`
	LargeBoxes  string `json:"largeBoxes"`

	WardrobeBoxes   string `json:"wardrobeBoxes"`
	VacuumBags      string `json:"vacuumBags"`
	FurniturePieces string `json:"furniturePieces"`

	PackingHours   string `json:"packingHours"`
	LoadingHours   string `json:"loadingHours"`
	TotalHours     string `json:"totalHours"`
	BenchmarkHours string `json:"benchmarkHours"`

	Plan        string `json:"plan"`
	PlanMessage string `json:"planMessage"`
}

// Display rounds the result for presentation.
func (r Result) Display() Display {
	return Display{
		TableVersion:    r.TableVersion,
		BoxableVolume:   FormatVolume(r.BoxableVolume),
		FurnitureVolume: FormatVolume(r.FurnitureVolume),
		TotalVolume:     FormatVolume(r.TotalVolume),
		RequiredSpace:   FormatVolumeRange(r.RequiredSpace),
		Weight:          FormatVolumeRange(r.Weight),
		Truck:           r.TruckRecommendation(),
		Warning:         r.Warning,
		Items:           FormatCountRange(r.Items),
		Boxes:           FormatCountRange(r.Boxes),
		SmallBoxes:      FormatCountRange(r.SmallBoxes),
		MediumBoxes:     FormatCountRange(r.MediumBoxes),
		LargeBoxes:      FormatCountRange(r.LargeBoxes),
		WardrobeBoxes:   strconv.Itoa(r.WardrobeBoxes),
		VacuumBags:      strconv.Itoa(r.VacuumBags),
		FurniturePieces: strconv.Itoa(r.FurniturePieces),
		PackingHours:    FormatHoursRange(r.PackingHours),
		LoadingHours:    FormatHoursRange(r.LoadingHours),
		TotalHours:      FormatHoursRange(r.TotalHours),
		BenchmarkHours:  FormatHoursRange(r.BenchmarkHours),
		Plan:            r.Plan,
		PlanMessage:     r.PlanMessage,
	}
}

// FormatVolume rounds a volume to a whole number.
func FormatVolume(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// FormatHours rounds hours to one decimal.
func FormatHours(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}

// FormatVolumeRange renders a volume range, collapsed to one value when both ends round alike.
func FormatVolumeRange(r Range) string {
	return collapse(FormatVolume(r.Min), FormatVolume(r.Max))
}

// FormatHoursRange renders an hours range the same way.
func FormatHoursRange(r Range) string {
	return collapse(FormatHours(r.Min), FormatHours(r.Max))
}

// FormatCountRange renders a count range, collapsed to one value when min equals max.
func FormatCountRange(r CountRange) string {
	return collapse(strconv.Itoa(r.Min), strconv.Itoa(r.Max))
}

func collapse(low, high string) string {
	if low == high {
		return low
	}
	return fmt.Sprintf("%s%s%s", low, RangeSeparator, high)
}
