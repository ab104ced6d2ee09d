package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/smartstow/move-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type ReportOptions struct {
	GlobalOptions
	HouseholdOptions

	Format        string
	OutputFile    string
	Title         string
	IncludeInputs bool
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions:    DefaultGlobalOptions(),
		HouseholdOptions: DefaultHouseholdOptions(),
		Format:           string(service.ReportFormatHTML),
		IncludeInputs:    true,
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:     "report [FLAGS]",
		Short:   "Render a printable move plan.",
		Example: "  planner report --home-size 2bed --tier-defaults --format xlsx --out plan.xlsx",
		Args:    cobra.NoArgs,
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

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.HouseholdOptions.Bind(fs)

	fs.StringVarP(&o.Format, "format", "f", o.Format, fmt.Sprintf("Report format. One of: (%s).", joinValues(service.NewReportService().Formats())))
	fs.StringVar(&o.OutputFile, "out", o.OutputFile, "Path of the report file. Defaults to move-plan.FORMAT")
	fs.StringVar(&o.Title, "title", o.Title, "Title printed on the plan")
	fs.BoolVar(&o.IncludeInputs, "include-inputs", o.IncludeInputs, "Print the household inputs on the plan")
}

func (o *ReportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.Format = strings.ToLower(o.Format)
	if o.OutputFile == "" {
		o.OutputFile = "move-plan." + o.Format
	}
	return nil
}

func (o *ReportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := o.HouseholdOptions.Validate(args); err != nil {
		return err
	}
	formats := funk.Map(service.NewReportService().Formats(), func(f service.ReportFormat) string { return string(f) }).([]string)
	if !funk.ContainsString(formats, o.Format) {
		return fmt.Errorf("report format must be one of %s", strings.Join(formats, ", "))
	}
	return nil
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	table, snapshot, result, err := runEstimate(ctx, &o.GlobalOptions, &o.HouseholdOptions)
	if err != nil {
		return err
	}

	report, err := service.NewReportService().GenerateReport(ctx, table, snapshot, *result, service.ReportOptions{
		Format:        service.ReportFormat(o.Format),
		Title:         o.Title,
		IncludeInputs: o.IncludeInputs,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(o.OutputFile, report.Content, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Fprintf(o.out, "%s plan written to %s\n", o.Format, o.OutputFile)
	return nil
}
