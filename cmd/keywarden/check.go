package keywarden

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keywarden/keywarden/pkg/commands"
	"github.com/keywarden/keywarden/pkg/output"
	"github.com/keywarden/keywarden/pkg/reconcile"
)

func newCheckCmd() *cobra.Command {
	var opts commands.ApplyOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Long:  MsgCheckLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := commands.Check(opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), output.RenderReport(report))

			if report.Failed() {
				return fmt.Errorf("%d settings could not be checked", report.Count(reconcile.StatusFailed))
			}
			if report.Changed() {
				return fmt.Errorf("registry state drifts from the catalog")
			}
			return nil
		},
	}

	addStoreFlags(cmd, &opts)
	return cmd
}
