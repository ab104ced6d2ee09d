package calculators

import (
	"github.com/smartstow/move-planner/internal/estimation"
)

// Compile-time assertion that Plan implements the Calculator interface.
var _ estimation.Calculator = (*Plan)(nil)

// Plan recommends a plan tier from the high item count.
type Plan struct{}

// NewPlan creates a Plan calculator.
func NewPlan() *Plan {
	return &Plan{}
}

// Name returns the human-readable name of this calculator.
func (c *Plan) Name() string { return "Plan" }

// Calculate always uses the maximum item count, so borderline households get the larger plan.
func (c *Plan) Calculate(w *estimation.Worksheet) error {
	tier := w.Table.RecommendPlan(w.Result.Items.Max)
	w.Result.Plan = tier.Name
	w.Result.PlanMessage = tier.Message
	return nil
}
