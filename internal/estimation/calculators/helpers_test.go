package calculators

import (
	"math"
	"testing"

	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
)

// loadTable returns a private copy of a preset that a test may modify.
func loadTable(t *testing.T, version string) *reference.Table {
	t.Helper()
	r, err := reference.LoadPresets()
	if err != nil {
		t.Fatalf("loading presets: %v", err)
	}
	table, err := r.Lookup(version)
	if err != nil {
		t.Fatalf("looking up %s: %v", version, err)
	}
	return table
}

// runStages runs the given calculators in order on a fresh worksheet.
func runStages(t *testing.T, table *reference.Table, s household.Snapshot, calcs ...estimation.Calculator) *estimation.Worksheet {
	t.Helper()
	w := estimation.NewWorksheet(table, s)
	for _, c := range calcs {
		if err := c.Calculate(w); err != nil {
			t.Fatalf("%s: unexpected error: %v", c.Name(), err)
		}
	}
	return w
}

func newSnapshot(tier reference.HomeTier, density reference.DensityTier, occupants, helpers int) household.Snapshot {
	return household.NewSnapshot(household.NewHomeProfile(tier, density, occupants, helpers))
}

func assertClose(t *testing.T, name string, want, got float64) {
	t.Helper()
	if math.Abs(want-got) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func assertRange(t *testing.T, name string, wantMin, wantMax float64, got estimation.Range) {
	t.Helper()
	assertClose(t, name+" min", wantMin, got.Min)
	assertClose(t, name+" max", wantMax, got.Max)
}

func assertCounts(t *testing.T, name string, wantMin, wantMax int, got estimation.CountRange) {
	t.Helper()
	if got.Min != wantMin || got.Max != wantMax {
		t.Errorf("%s: expected [%d, %d], got [%d, %d]", name, wantMin, wantMax, got.Min, got.Max)
	}
}
