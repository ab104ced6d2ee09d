package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/smartstow/move-planner/internal/reference"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type TablesOptions struct {
	GlobalOptions

	Output string
}

func DefaultTablesOptions() *TablesOptions {
	return &TablesOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdTables() *cobra.Command {
	o := DefaultTablesOptions()
	cmd := &cobra.Command{
		Use:   "tables [VERSION]",
		Short: "List the reference tables or show one of them.",
		Example: "  planner tables\n" +
			"  planner tables 2.0 -o yaml",
		Args: cobra.MaximumNArgs(1),
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

func (o *TablesOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", joinValues(legalOutputTypes)))
}

func (o *TablesOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *TablesOptions) Run(ctx context.Context, args []string) error {
	srv, err := o.EstimationService()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		tables := srv.Tables()
		if o.Output != tableFormat {
			summaries := funk.Map(tables, func(t *reference.Table) tableSummary {
				return tableSummary{Version: t.Version, Name: t.Name, Description: t.Description, Default: t.Version == srv.DefaultVersion()}
			}).([]tableSummary)
			return printStructured(o.out, o.Output, summaries)
		}
		return o.printTableList(tables, srv.DefaultVersion())
	}

	table, err := srv.Table(args[0])
	if err != nil {
		return err
	}
	if o.Output != tableFormat {
		return printStructured(o.out, o.Output, table)
	}
	return o.printTableDetail(table)
}

type tableSummary struct {
	Version     string `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default"`
}

func (o *TablesOptions) printTableList(tables []*reference.Table, defaultVersion string) error {
	w := tabwriter.NewWriter(o.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tDEFAULT\tDESCRIPTION")
	for _, t := range tables {
		isDefault := ""
		if t.Version == defaultVersion {
			isDefault = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Version, t.Name, isDefault, t.Description)
	}
	return w.Flush()
}

func (o *TablesOptions) printTableDetail(t *reference.Table) error {
	w := tabwriter.NewWriter(o.out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Version:\t%s\n", t.Version)
	fmt.Fprintf(w, "Name:\t%s\n", t.Name)

	fmt.Fprintln(w, "\nHOME SIZE\tBASE VOLUME (ft³)\tBEDROOMS")
	for _, tier := range reference.HomeTiers {
		spec := t.HomeTiers[tier]
		fmt.Fprintf(w, "%s\t%.0f\t%d\n", tier, spec.BaseVolume, spec.Bedrooms)
	}

	fmt.Fprintln(w, "\nDENSITY\tMULTIPLIER")
	for _, density := range reference.DensityTiers {
		fmt.Fprintf(w, "%s\t%.2f\n", density, t.Densities[density])
	}

	fmt.Fprintf(w, "\nHOBBY\tBOXABLE\t%s\n", joinTabs(reference.ActiveIntensities))
	for _, hobby := range reference.Hobbies {
		spec := t.Hobbies[hobby]
		fmt.Fprintf(w, "%s\t%.0f%%", hobby, spec.BoxableFraction*100)
		for _, level := range reference.ActiveIntensities {
			fmt.Fprintf(w, "\t%.0f", spec.Levels[level])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nTRUCK\tUP TO (ft³)")
	for _, class := range t.Trucks.Classes {
		fmt.Fprintf(w, "%s\t%.0f\n", class.Name, class.MaxSpace)
	}
	fmt.Fprintf(w, "%s\t-\n", t.Trucks.Overflow.Name)

	return w.Flush()
}

func joinTabs(levels []reference.Intensity) string {
	return strings.Join(funk.Map(levels, func(l reference.Intensity) string { return string(l) }).([]string), "\t")
}
