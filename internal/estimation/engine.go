package estimation

import (
	"fmt"

	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
)

// Engine orchestrates Calculator objects over one worksheet per estimate.
//
// An Engine holds no state besides its calculators and is safe for concurrent use once registration is done.
type Engine struct {
	calculators []Calculator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
	}
}

// Register adds a Calculator to participate in the estimate.
// Calculators are executed in the order they are registered, so a calculator must be registered after
// the ones whose worksheet fields it reads.
// Register panics if a calculator with the same Name() is already registered.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("estimation: calculator %q already registered", c.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Calculators returns the names of the registered calculators in execution order.
func (e *Engine) Calculators() []string {
	names := make([]string, 0, len(e.calculators))
	for _, c := range e.calculators {
		names = append(names, c.Name())
	}
	return names
}

// Estimate runs every registered calculator against one snapshot and one table.
// The first calculator error aborts the run: it means the table is broken, not that the input is bad.
func (e *Engine) Estimate(table *reference.Table, snapshot household.Snapshot) (Result, error) {
	if table == nil {
		return Result{}, reference.NewErrConfiguration("estimate requested without a reference table")
	}

	w := NewWorksheet(table, snapshot)
	for _, calc := range e.calculators {
		if err := calc.Calculate(w); err != nil {
			return Result{}, fmt.Errorf("%s: %w", calc.Name(), err)
		}
	}
	return w.Result, nil
}
