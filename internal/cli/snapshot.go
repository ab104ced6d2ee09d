package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/smartstow/move-planner/internal/household"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewCmdSnapshot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Work with saved household snapshot records.",
	}
	cmd.AddCommand(NewCmdSnapshotInit())
	return cmd
}

type SnapshotInitOptions struct {
	GlobalOptions
	HouseholdOptions

	OutputFile string
	Force      bool
}

func DefaultSnapshotInitOptions() *SnapshotInitOptions {
	return &SnapshotInitOptions{
		GlobalOptions:    DefaultGlobalOptions(),
		HouseholdOptions: DefaultHouseholdOptions(),
		OutputFile:       "household.json",
	}
}

func NewCmdSnapshotInit() *cobra.Command {
	o := DefaultSnapshotInitOptions()
	cmd := &cobra.Command{
		Use:     "init [FLAGS]",
		Short:   "Write a versioned snapshot record from the household flags.",
		Example: "  planner snapshot init --home-size 1bed --hobby ski=pro --tier-defaults --out studio.json",
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

func (o *SnapshotInitOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.HouseholdOptions.Bind(fs)

	fs.StringVar(&o.OutputFile, "out", o.OutputFile, "Path of the record file to write")
	fs.BoolVar(&o.Force, "force", o.Force, "Overwrite an existing record file")
}

func (o *SnapshotInitOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *SnapshotInitOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := o.HouseholdOptions.Validate(args); err != nil {
		return err
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file is empty")
	}
	if _, err := os.Stat(o.OutputFile); err == nil && !o.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", o.OutputFile)
	}
	return nil
}

func (o *SnapshotInitOptions) Run(ctx context.Context, args []string) error {
	srv, err := o.EstimationService()
	if err != nil {
		return err
	}
	table, err := srv.Table(o.TableVersion)
	if err != nil {
		return err
	}

	snapshot, err := o.Snapshot(table, o.errOut)
	if err != nil {
		return err
	}

	record, err := household.Encode(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(o.OutputFile, append(record, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing snapshot record: %w", err)
	}

	fmt.Fprintf(o.out, "snapshot record written to %s\n", o.OutputFile)
	return nil
}
