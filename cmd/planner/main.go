package main

import (
	"os"

	"github.com/smartstow/move-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewPlannerCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPlannerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner [flags] [options]",
		Short: "planner estimates the truck, supplies and labor a household move needs.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdSnapshot())
	cmd.AddCommand(cli.NewCmdTables())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
