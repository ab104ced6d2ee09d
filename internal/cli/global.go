package cli

import (
	"io"

	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GlobalOptions select the reference table every command estimates with.
type GlobalOptions struct {
	TableVersion string
	TableFile    string

	out    io.Writer
	errOut io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		TableVersion: reference.DefaultVersion,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.TableVersion, "table-version", o.TableVersion, "Version of the reference table to estimate with")
	fs.StringVar(&o.TableFile, "table-file", o.TableFile, "Path to an extra reference table (yaml or json)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	o.errOut = cmd.ErrOrStderr()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

// EstimationService loads the presets plus the optional table file.
func (o *GlobalOptions) EstimationService() (*service.EstimationService, error) {
	registry, err := service.NewReferenceRegistry(o.TableFile)
	if err != nil {
		return nil, err
	}
	return service.NewEstimationService(registry, o.TableVersion), nil
}
