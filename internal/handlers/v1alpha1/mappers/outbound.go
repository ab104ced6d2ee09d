package mappers

import (
	"github.com/smartstow/move-planner/api/v1alpha1"
	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
)

func rangeToApi(r estimation.Range) v1alpha1.Range {
	return v1alpha1.Range{Min: r.Min, Max: r.Max}
}

func countRangeToApi(r estimation.CountRange) v1alpha1.CountRange {
	return v1alpha1.CountRange{Min: r.Min, Max: r.Max}
}

func EstimateToApi(result estimation.Result) v1alpha1.Estimate {
	d := result.Display()

	return v1alpha1.Estimate{
		TableVersion: result.TableVersion,
		Volume: v1alpha1.VolumeEstimate{
			Boxable:       result.BoxableVolume,
			Furniture:     result.FurnitureVolume,
			Total:         result.TotalVolume,
			Supplies:      result.SupplyVolume,
			Band:          rangeToApi(result.VolumeBand),
			RequiredSpace: rangeToApi(result.RequiredSpace),
			Weight:        rangeToApi(result.Weight),
		},
		Truck: v1alpha1.TruckEstimate{
			Classes:        append([]string{}, result.Trucks...),
			Recommendation: result.TruckRecommendation(),
			Overflow:       result.TruckOverflow,
			Warning:        v1alpha1.StringPtr(result.Warning),
		},
		Supplies: v1alpha1.SuppliesEstimate{
			Items:         countRangeToApi(result.Items),
			Boxes:         countRangeToApi(result.Boxes),
			SmallBoxes:    countRangeToApi(result.SmallBoxes),
			MediumBoxes:   countRangeToApi(result.MediumBoxes),
			LargeBoxes:    countRangeToApi(result.LargeBoxes),
			WardrobeBoxes: result.WardrobeBoxes,
			VacuumBags:    result.VacuumBags,
		},
		Labor: v1alpha1.LaborEstimate{
			Helpers:         result.Helpers,
			HousePieces:     result.HousePieces,
			HobbyPieces:     result.HobbyPieces,
			FurniturePieces: result.FurniturePieces,
			PackingHours:    rangeToApi(result.PackingHours),
			LoadingHours:    rangeToApi(result.LoadingHours),
			TotalHours:      rangeToApi(result.TotalHours),
			BenchmarkHours:  rangeToApi(result.BenchmarkHours),
		},
		Plan: v1alpha1.PlanRecommendation{
			Name:    result.Plan,
			Message: result.PlanMessage,
		},
		Display: v1alpha1.EstimateDisplay{
			RequiredSpace:   d.RequiredSpace,
			Weight:          d.Weight,
			Truck:           d.Truck,
			Items:           d.Items,
			Boxes:           d.Boxes,
			SmallBoxes:      d.SmallBoxes,
			MediumBoxes:     d.MediumBoxes,
			LargeBoxes:      d.LargeBoxes,
			WardrobeBoxes:   d.WardrobeBoxes,
			VacuumBags:      d.VacuumBags,
			FurniturePieces: d.FurniturePieces,
			PackingHours:    d.PackingHours,
			LoadingHours:    d.LoadingHours,
			TotalHours:      d.TotalHours,
			BenchmarkHours:  d.BenchmarkHours,
		},
	}
}

func HouseholdToApi(s household.Snapshot) v1alpha1.Household {
	n := s.Normalize()

	res := v1alpha1.Household{
		Home: &v1alpha1.HomeProfile{
			Tier:      string(n.Home.Tier),
			Density:   string(n.Home.Density),
			Occupants: n.Home.Occupants,
			Helpers:   n.Home.Helpers,
		},
		Hobbies:   make(map[string]string, len(n.Hobbies)),
		Furniture: make(map[string]int, len(n.Furniture)),
	}
	for id, level := range n.Hobbies {
		res.Hobbies[string(id)] = string(level)
	}
	for piece, count := range n.Furniture {
		res.Furniture[string(piece)] = count
	}
	return res
}

func SnapshotToApi(s service.SavedSnapshot) v1alpha1.Snapshot {
	return v1alpha1.Snapshot{
		Id:           s.ID,
		Label:        s.Label,
		TableVersion: s.TableVersion,
		Household:    HouseholdToApi(s.Snapshot),
		Restored:     s.Restored,
		RestoreError: v1alpha1.StringPtr(s.RestoreError),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func SnapshotListToApi(snapshots []service.SavedSnapshot) v1alpha1.SnapshotList {
	res := make(v1alpha1.SnapshotList, 0, len(snapshots))
	for _, s := range snapshots {
		res = append(res, SnapshotToApi(s))
	}
	return res
}

func ReferenceTableSummaryToApi(t *reference.Table, defaultVersion string) v1alpha1.ReferenceTableSummary {
	return v1alpha1.ReferenceTableSummary{
		Version:     t.Version,
		Name:        t.Name,
		Description: v1alpha1.StringPtr(t.Description),
		Default:     t.Version == defaultVersion,
	}
}

func ReferenceTableListToApi(tables []*reference.Table, defaultVersion string) v1alpha1.ReferenceTableList {
	res := make(v1alpha1.ReferenceTableList, 0, len(tables))
	for _, t := range tables {
		res = append(res, ReferenceTableSummaryToApi(t, defaultVersion))
	}
	return res
}

// ReferenceTableToApi lists tiers, hobbies and pieces in their display order.
func ReferenceTableToApi(t *reference.Table, defaultVersion string) v1alpha1.ReferenceTable {
	res := v1alpha1.ReferenceTable{
		ReferenceTableSummary: ReferenceTableSummaryToApi(t, defaultVersion),
		HomeTiers:             []string{},
		DensityTiers:          []string{},
		Intensities:           []string{},
		Hobbies:               []v1alpha1.HobbyInfo{},
		Furniture:             map[string]float64{},
		Trucks:                []v1alpha1.TruckClass{},
	}

	for _, tier := range reference.HomeTiers {
		if _, ok := t.HomeTiers[tier]; ok {
			res.HomeTiers = append(res.HomeTiers, string(tier))
		}
	}
	for _, density := range reference.DensityTiers {
		if _, ok := t.Densities[density]; ok {
			res.DensityTiers = append(res.DensityTiers, string(density))
		}
	}
	for _, level := range reference.Intensities {
		res.Intensities = append(res.Intensities, string(level))
	}
	for _, id := range reference.Hobbies {
		spec, ok := t.Hobbies[id]
		if !ok {
			continue
		}
		levels := make(map[string]float64, len(spec.Levels))
		for level, volume := range spec.Levels {
			levels[string(level)] = volume
		}
		res.Hobbies = append(res.Hobbies, v1alpha1.HobbyInfo{
			Id:              string(id),
			Name:            spec.Name,
			BoxableFraction: spec.BoxableFraction,
			Levels:          levels,
		})
	}
	for piece, volume := range t.Furniture {
		res.Furniture[string(piece)] = volume
	}
	for _, class := range t.Trucks.Classes {
		maxSpace := class.MaxSpace
		res.Trucks = append(res.Trucks, v1alpha1.TruckClass{Name: class.Name, MaxSpace: &maxSpace})
	}
	res.Trucks = append(res.Trucks, v1alpha1.TruckClass{Name: t.Trucks.Overflow.Name})

	return res
}
