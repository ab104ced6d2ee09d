package mappers

import (
	"github.com/smartstow/move-planner/api/v1alpha1"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
)

// HouseholdFromApi builds the snapshot described by a validated request. table supplies the tier defaults
// when UseTierDefaults is set; explicit furniture counts override them.
func HouseholdFromApi(resource v1alpha1.Household, table *reference.Table) (household.Snapshot, error) {
	home := resource.Home
	if home == nil {
		home = &v1alpha1.HomeProfile{}
	}

	s := household.NewSnapshot(household.NewHomeProfile(
		reference.HomeTier(home.Tier),
		reference.DensityTier(home.Density),
		home.Occupants,
		home.Helpers,
	))

	if resource.UseTierDefaults {
		if err := s.ApplyTierDefaults(table); err != nil {
			return household.Snapshot{}, err
		}
	}

	for id, rawLevel := range resource.Hobbies {
		level, err := reference.ParseIntensity(rawLevel)
		if err != nil {
			return household.Snapshot{}, err
		}
		s.SetHobby(reference.HobbyID(id), level)
	}
	for piece, count := range resource.Furniture {
		s.SetPieceCount(reference.PieceType(piece), count)
	}

	return s, nil
}

func SnapshotFormApi(label, tableVersion string, snapshot household.Snapshot) service.SnapshotForm {
	return service.SnapshotForm{
		Label:        label,
		TableVersion: tableVersion,
		Snapshot:     snapshot,
	}
}

func SnapshotFilterApi(label, tableVersion string, limit, offset int) service.SnapshotFilter {
	switch {
	case limit <= 0:
		limit = v1alpha1.DefaultSnapshotPageSize
	case limit > v1alpha1.MaxSnapshotPageSize:
		limit = v1alpha1.MaxSnapshotPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return service.SnapshotFilter{
		Label:        label,
		TableVersion: tableVersion,
		Limit:        limit,
		Offset:       offset,
	}
}
