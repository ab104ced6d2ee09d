package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service/report/types"
)

const (
	defaultTitle = "MOVE PLAN"

	// HouseholdSection lists the declared inputs. It is dropped unless the options ask for it.
	HouseholdSection = "Household"
)

// StandardPlanProcessor turns an estimate into the sections shared by every renderer.
type StandardPlanProcessor struct {
	now func() time.Time
}

var _ types.PlanProcessor = (*StandardPlanProcessor)(nil)

func NewStandardPlanProcessor() *StandardPlanProcessor {
	return &StandardPlanProcessor{now: time.Now}
}

func (p *StandardPlanProcessor) ProcessPlan(table types.TableInfo, snapshot household.Snapshot, result estimation.Result) (*types.ReportData, error) {
	if result.TableVersion == "" {
		return nil, fmt.Errorf("estimate has no table version")
	}

	d := result.Display()
	now := p.now()
	data := &types.ReportData{
		Title:   defaultTitle,
		Table:   table,
		Display: d,
		Timestamps: types.ReportTimestamps{
			Generated:     now.Format("January 2, 2006"),
			GeneratedTime: now.Format("15:04:05 MST"),
		},
	}

	data.Sections = append(data.Sections, householdSection(table, snapshot))
	data.Sections = append(data.Sections,
		types.Section{
			Title: "Volume and Truck",
			Rows: []types.Row{
				{Label: "Boxable volume", Value: d.BoxableVolume, Note: "cu ft"},
				{Label: "Furniture volume", Value: d.FurnitureVolume, Note: "cu ft"},
				{Label: "Total volume", Value: d.TotalVolume, Note: "cu ft"},
				{Label: "Required truck space", Value: d.RequiredSpace, Note: "cu ft"},
				{Label: "Estimated weight", Value: d.Weight, Note: "lb"},
				{Label: "Recommended truck", Value: d.Truck},
			},
		},
		types.Section{
			Title: "Packing Supplies",
			Rows: []types.Row{
				{Label: "Boxes", Value: d.Boxes},
				{Label: "Small boxes", Value: d.SmallBoxes},
				{Label: "Medium boxes", Value: d.MediumBoxes},
				{Label: "Large boxes", Value: d.LargeBoxes},
				{Label: "Wardrobe boxes", Value: d.WardrobeBoxes},
				{Label: "Vacuum bags", Value: d.VacuumBags},
				{Label: "Furniture pieces", Value: d.FurniturePieces},
				{Label: "Items", Value: d.Items},
			},
		},
		types.Section{
			Title: "Labor",
			Rows: []types.Row{
				{Label: "Packing", Value: d.PackingHours, Note: "hours"},
				{Label: "Loading", Value: d.LoadingHours, Note: "hours"},
				{Label: "Total", Value: d.TotalHours, Note: "hours"},
				{Label: "With a digital inventory", Value: d.BenchmarkHours, Note: "hours"},
			},
		},
		types.Section{
			Title: "Recommendation",
			Rows: []types.Row{
				{Label: "Plan", Value: d.Plan, Note: d.PlanMessage},
				{Label: "Reference table", Value: table.Version, Note: table.Name},
			},
		},
	)

	if result.Warning != "" {
		data.Warnings = append(data.Warnings, result.Warning)
	}

	return data, nil
}

func householdSection(table types.TableInfo, s household.Snapshot) types.Section {
	section := types.Section{
		Title: HouseholdSection,
		Rows: []types.Row{
			{Label: "Home size", Value: string(s.Home.Tier)},
			{Label: "Density", Value: string(s.Home.Density)},
			{Label: "Occupants", Value: strconv.Itoa(s.Home.Occupants)},
			{Label: "Helpers", Value: strconv.Itoa(s.Home.Helpers)},
		},
	}

	for _, id := range reference.Hobbies {
		level := s.Intensity(id)
		if level == reference.IntensityNone {
			continue
		}
		name := table.HobbyNames[string(id)]
		if name == "" {
			name = string(id)
		}
		section.Rows = append(section.Rows, types.Row{Label: "Hobby: " + name, Value: string(level)})
	}

	for _, piece := range reference.PieceTypes {
		if count := s.Furniture[piece]; count > 0 {
			section.Rows = append(section.Rows, types.Row{Label: "Furniture: " + string(piece), Value: strconv.Itoa(count)})
		}
	}

	return section
}

// NewTableInfo extracts the report facing details of a reference table.
func NewTableInfo(t *reference.Table) types.TableInfo {
	info := types.TableInfo{
		Version:    t.Version,
		Name:       t.Name,
		HobbyNames: make(map[string]string, len(t.Hobbies)),
	}
	for id, spec := range t.Hobbies {
		info.HobbyNames[string(id)] = spec.Name
	}
	return info
}
