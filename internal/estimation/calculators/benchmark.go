package calculators

import (
	"github.com/smartstow/move-planner/internal/estimation"
)

// Compile-time assertion that Benchmark implements the Calculator interface.
var _ estimation.Calculator = (*Benchmark)(nil)

// Benchmark estimates the time needed to catalogue every item digitally. It is a comparison figure only.
type Benchmark struct {
	secondsPerItem float64
}

// BenchmarkOption is a functional option for configuring a Benchmark calculator.
type BenchmarkOption func(*Benchmark)

// WithSecondsPerItem sets the cataloguing time per item.
// Non-positive values are ignored and the table value is kept.
func WithSecondsPerItem(seconds float64) BenchmarkOption {
	return func(b *Benchmark) {
		if seconds > 0 {
			b.secondsPerItem = seconds
		}
	}
}

// NewBenchmark creates a Benchmark calculator that uses the table coefficient unless overridden.
func NewBenchmark(opts ...BenchmarkOption) *Benchmark {
	res := Benchmark{}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Benchmark) Name() string { return "Digital Benchmark" }

// Calculate converts both item bounds to hours.
func (c *Benchmark) Calculate(w *estimation.Worksheet) error {
	seconds := w.Table.Coefficients.BenchmarkSecondsPerItem
	if c.secondsPerItem > 0 {
		seconds = c.secondsPerItem
	}
	items := w.Result.Items
	w.Result.BenchmarkHours = estimation.Range{
		Min: float64(items.Min) * seconds / 3600,
		Max: float64(items.Max) * seconds / 3600,
	}
	return nil
}
