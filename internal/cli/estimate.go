package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type EstimateOptions struct {
	GlobalOptions
	HouseholdOptions

	Output string
}

// EstimateOutput is what the json and yaml outputs print.
type EstimateOutput struct {
	Result  estimation.Result  `json:"result"`
	Display estimation.Display `json:"display"`
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions:    DefaultGlobalOptions(),
		HouseholdOptions: DefaultHouseholdOptions(),
		Output:           tableFormat,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate [FLAGS]",
		Short: "Estimate volume, truck, supplies and labor for a household move.",
		Example: "  planner estimate --home-size 3bed --density aboveAverage --occupants 4 --helpers 2 \\\n" +
			"    --hobby cycling=high --hobby golf=avg --tier-defaults --furniture desk=2",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.HouseholdOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", joinValues(legalOutputTypes)))
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := o.HouseholdOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	table, snapshot, result, err := runEstimate(ctx, &o.GlobalOptions, &o.HouseholdOptions)
	if err != nil {
		return err
	}

	if o.Output == tableFormat || o.Output == "" {
		return printEstimateTable(o.out, table, snapshot, *result)
	}
	return printStructured(o.out, o.Output, EstimateOutput{Result: *result, Display: result.Display()})
}

// runEstimate resolves the table, builds the household and estimates it.
func runEstimate(ctx context.Context, global *GlobalOptions, inputs *HouseholdOptions) (*reference.Table, household.Snapshot, *estimation.Result, error) {
	srv, err := global.EstimationService()
	if err != nil {
		return nil, household.Snapshot{}, nil, err
	}
	table, err := srv.Table(global.TableVersion)
	if err != nil {
		return nil, household.Snapshot{}, nil, err
	}
	snapshot, err := inputs.Snapshot(table, global.errOut)
	if err != nil {
		return nil, household.Snapshot{}, nil, err
	}
	result, err := srv.Estimate(ctx, snapshot, table.Version)
	if err != nil {
		return nil, household.Snapshot{}, nil, err
	}
	return table, snapshot, result, nil
}

func printEstimateTable(out io.Writer, table *reference.Table, s household.Snapshot, r estimation.Result) error {
	d := r.Display()
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)

	fmt.Fprintf(w, "REFERENCE TABLE\t%s (%s)\n", table.Version, table.Name)
	fmt.Fprintf(w, "HOME\t%s, %s, %d occupants, %d helpers\n", s.Home.Tier, s.Home.Density, s.Home.Occupants, s.Home.Helpers)
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "REQUIRED SPACE\t%s cu ft\n", d.RequiredSpace)
	fmt.Fprintf(w, "WEIGHT\t%s lb\n", d.Weight)
	fmt.Fprintf(w, "TRUCK\t%s\n", d.Truck)
	if d.Warning != "" {
		fmt.Fprintf(w, "WARNING\t%s\n", d.Warning)
	}
	fmt.Fprintf(w, "BOXES\t%s (small %s, medium %s, large %s)\n", d.Boxes, d.SmallBoxes, d.MediumBoxes, d.LargeBoxes)
	fmt.Fprintf(w, "ITEMS\t%s\n", d.Items)
	fmt.Fprintf(w, "WARDROBE BOXES\t%s\n", d.WardrobeBoxes)
	fmt.Fprintf(w, "VACUUM BAGS\t%s\n", d.VacuumBags)
	fmt.Fprintf(w, "FURNITURE PIECES\t%s\n", d.FurniturePieces)
	fmt.Fprintf(w, "PACKING\t%s h\n", d.PackingHours)
	fmt.Fprintf(w, "LOADING\t%s h\n", d.LoadingHours)
	fmt.Fprintf(w, "TOTAL LABOR\t%s h\n", d.TotalHours)
	fmt.Fprintf(w, "DIGITAL INVENTORY\t%s h\n", d.BenchmarkHours)
	fmt.Fprintf(w, "PLAN\t%s\n", d.Plan)
	if d.PlanMessage != "" {
		fmt.Fprintf(w, "\t%s\n", d.PlanMessage)
	}

	return w.Flush()
}
